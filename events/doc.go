/*
Package events delivers notifications produced by successful state
transitions to off-chain observers.

Delivery is fire-and-forget. An Emitter must never block the caller and the
engine never depends on an event being received.
*/
package events

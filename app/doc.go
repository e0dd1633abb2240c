/*
Package app contains the building blocks of a lockbox application: the
message router, the decorator chain, genesis loading and the Engine that
executes transactions one at a time against the committed store.
*/
package app

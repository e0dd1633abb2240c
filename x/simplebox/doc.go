/*
Package simplebox implements manager authorised lock boxes that swap the
native currency for points.

A deposit box holds native coins paid by a trader until the manager closes
it, crediting the fees to the collectors. A withdraw box promises a trader
the native value of points at a given price; closing it pays the net amount
out of custody.
*/
package simplebox

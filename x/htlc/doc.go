/*
Package htlc implements hashed timelock boxes used for atomic swaps between
assets.

A box is closed by revealing the preimage of the committed secret hash, or
expired once its time lock elapsed. Deposit boxes hold the value pulled from
the trader and return it on expiry. Withdraw boxes pay the principal out of
custody when closed and move nothing when they expire.
*/
package htlc

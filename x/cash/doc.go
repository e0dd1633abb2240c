/*
Package cash implements the fungible asset transfer capability.

Every account owns a wallet holding a set of coins. Owners can move coins
directly or approve another account to pull up to a given amount on their
behalf. The Vault wraps both operations around the custody account that
holds all value locked by the engine.
*/
package cash

/*
Package feemgr implements the fee manager registry.

The registry holds the two fee collector accounts. Fees of settled boxes are
credited to the collectors' liquidity ledger entries. Reassigning a collector
moves the whole ledger entry of the old collector to the new one in the same
transaction as the identity change, so accrued fees are never orphaned.
*/
package feemgr

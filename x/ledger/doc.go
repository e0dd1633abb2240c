/*
Package ledger implements the liquidity ledger.

The ledger tracks how much of the value held in custody is owned by each
liquidity provider or fee collector. An entry is keyed by the account
address and holds one coin per asset. Entries are claims on custody: a
withdrawal is paid only when both the entry and the custody cover it.

All mutations go through the Ledger service so that a balance never becomes
negative and every payout is preceded by a solvency check.
*/
package ledger

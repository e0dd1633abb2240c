/*
Package escrow provides the record shared by every box variant.

A box is created Open under a caller chosen key and later moves to Closed or
Expired, both terminal. Keys live in an append only store: once a key was
used it can never be opened again. The conditions under which a box may
leave the Open state are described by a Policy.
*/
package escrow

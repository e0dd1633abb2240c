/*
Package sigs binds the signers of a transaction into the processing context.

Signers are established by the environment that submits the transaction,
for example a gateway that terminated the client authentication. The
Decorator copies them into the context and Authenticate exposes them to the
handlers through the x.Authenticator interface.
*/
package sigs

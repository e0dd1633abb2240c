/*
Package server exposes the engine over HTTP.

Transactions are posted as JSON messages to /tx/{path} and dry runs to
/check/{path}. Signers are read from the X-Lockbox-Signer header, which is
expected to be set by an authenticating gateway. Stored models are read with
GET /query/{path}/{key}. Events of committed transactions are streamed over
a websocket at /events and prometheus metrics are served at /metrics.
*/
package server

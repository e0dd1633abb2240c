/*
Package lockbox defines all common interfaces used to put together the
escrow and settlement engine, as well as implementations of some of the
simpler components (when interfaces would be too much overhead).

We pass context through context.Context between the engine, decorators and
handlers. To do so, lockbox defines some common keys to store info, such as
the block time and the chain id. Each extension may add its own keys to
enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set to avoid lower-level modules
overwriting the value.
*/
package lockbox

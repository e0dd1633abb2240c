/*
Package orm provides an easy to use db wrapper.

Every stored entity is a protobuf message that knows how to validate itself.
Entities are grouped in buckets, a bucket owning a unique key prefix in the
store. A Sequence provides monotonically increasing identifiers that are
never reused.
*/
package orm

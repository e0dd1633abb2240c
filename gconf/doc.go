/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps its configuration as a single protobuf message stored
under the "_c:<package name>" key. Configuration is loaded from the genesis
file and can be updated later by the configuration owner, using a message
with a Patch field of the configuration type.

Not being able to get a configuration value is a critical condition for the
extension and there is no recovery path for the client.
*/
package gconf

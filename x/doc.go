/*
Package x contains some standard extensions and helpers shared by all
modules. Modules are under a subdirectory each.

The Authenticator declared here is the permission gate consulted by every
handler, and the pause decorator is the gate that stops processing of a
whole module.
*/
package x

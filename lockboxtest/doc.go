/*
Package lockboxtest provides helpers and mocks for testing extensions.
*/
package lockboxtest

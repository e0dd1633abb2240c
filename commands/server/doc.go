/*
Package server implements the init and start commands shared by lockbox
daemons.
*/
package server

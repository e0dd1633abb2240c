/*
Package errors implements the error taxonomy shared by all lockbox extensions.

Every failure returned by a handler wraps one of the root errors declared in
this package. A root error carries a numeric code that is stable across
releases and a short description. Clients use the code to decide how to react
(for example retry after funding the custody account) and the message to show
a human what went wrong.

Register a custom root error with Register(code, description) during program
startup. Create runtime instances with ErrXyz.New, ErrXyz.Newf or Wrap so that
a stacktrace is attached at the point of creation.

Formatting an error with

	%s prints the message
	%+v prints the message with the full stack trace
*/
package errors

package lockboxtest

import "github.com/iov-one/lockbox"

// Tx represents a transaction carrying a single message that is to be
// processed.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg lockbox.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ lockbox.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (lockbox.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message that is not bound to any extension.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ lockbox.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

package lockbox

import (
	"encoding/json"
	"reflect"

	"github.com/iov-one/lockbox/errors"
)

// Handler is a core engine that can process a message to modify the state of
// the system.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction. It
// is its own interface to allow better type controls in the next arguments
// in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction. It is its own
// interface to allow better type controls in the next arguments in
// Decorator.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication, or pause handling.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup for this is
// all done in the app.
type Registry interface {
	// Handle assigns given handler to handle processing of every message
	// of provided type.
	// Using a message instance to register is the only way to learn its
	// type, which is later required to decode incoming messages.
	Handle(Msg, Handler)
}

// CheckResult captures any non-error results of a check call.
type CheckResult struct {
	// Log is human-readable informational string.
	Log string
}

// DeliverResult captures any non-error results of a deliver call.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the key of a created
	// box.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// Events are published to the observers once all changes of this
	// transaction are committed. They are never published for a failed
	// transaction.
	Events []Event
}

// Event is a notification produced by a successful state transition. Every
// event carries the key of the affected record and the economically relevant
// amounts for off-chain indexing.
type Event struct {
	// Kind identifies the notification, for example
	// "simplebox.deposit.opened".
	Kind string `json:"kind"`
	// Key is the identifier of the record that the event refers to.
	Key []byte `json:"key,omitempty"`
	// Attributes carry the remaining values in a human readable form.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Options are the app state json from the genesis file.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the json
// into the given obj. Returns nil if it is not there (leave obj untouched).
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "option %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize extensions from genesis
// file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// Msg is message for the blockchain to take an action (Make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	// Path returns a category of the message. This is used for routing
	// and authorization. Each type must return a unique path.
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one test does not pass and message is considered
	// invalid.
	// This validation performs only tests that do not require access to
	// the storage.
	Validate() error
}

// Tx represent the data sent from the user to the engine. It carries exactly
// one message. Authentication of the sender is provided by the surrounding
// environment and is carried in the context.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	// Big thanks to the reflect package, a generic function can
	// populate any message type.
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}

	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if !src.Type().AssignableTo(dest.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dest.Elem().Set(src)
	return nil
}

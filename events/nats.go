package events

import (
	"encoding/json"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/nats-io/nats.go"
	"github.com/tendermint/tendermint/libs/log"
)

// Publisher is the subset of *nats.Conn used to publish events.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "lockbox"

// NATSEmitter publishes every event as a JSON message on subject
// "<prefix>.<kind>". A publish failure is logged and otherwise ignored.
type NATSEmitter struct {
	pub    Publisher
	prefix string
	logger log.Logger
}

var _ Emitter = (*NATSEmitter)(nil)

// NewNATSEmitter returns an emitter publishing through given connection.
func NewNATSEmitter(pub Publisher, prefix string, logger log.Logger) *NATSEmitter {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &NATSEmitter{
		pub:    pub,
		prefix: prefix,
		logger: logger.With("module", "events"),
	}
}

// Subject returns the subject that an event of given kind is published on.
func (n *NATSEmitter) Subject(kind string) string {
	return n.prefix + "." + kind
}

// Emit implements the Emitter interface.
func (n *NATSEmitter) Emit(e lockbox.Event) {
	raw, err := json.Marshal(e)
	if err != nil {
		n.logger.Error("cannot serialize event", "kind", e.Kind, "err", err)
		return
	}
	if err := n.pub.Publish(n.Subject(e.Kind), raw); err != nil {
		n.logger.Error("cannot publish event", "kind", e.Kind, "err", err)
	}
}

// ConnectNATS opens a connection to the NATS server that reconnects forever.
func ConnectNATS(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTransfer, "nats %s: %s", url, err)
	}
	return nc, nil
}

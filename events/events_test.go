package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/lockboxtest/assert"
)

func TestMultiForwardsToAll(t *testing.T) {
	var a, b Recorder
	m := Multi{&a, nil, NoopEmitter{}, &b}

	m.Emit(lockbox.Event{Kind: "first"})
	m.Emit(lockbox.Event{Kind: "second"})

	assert.Equal(t, []string{"first", "second"}, a.Kinds())
	assert.Equal(t, []string{"first", "second"}, b.Kinds())
}

func TestHubFanOut(t *testing.T) {
	h := NewHub()
	first, cancelFirst := h.Subscribe(4)
	second, cancelSecond := h.Subscribe(4)
	assert.Equal(t, 2, h.Subscribers())

	h.Emit(lockbox.Event{Kind: "a", Key: []byte("k")})

	assert.Equal(t, "a", (<-first).Kind)
	assert.Equal(t, "a", (<-second).Kind)

	cancelFirst()
	// Cancel must be idempotent.
	cancelFirst()
	assert.Equal(t, 1, h.Subscribers())
	if _, ok := <-first; ok {
		t.Fatal("cancelled subscription channel must be closed")
	}

	h.Emit(lockbox.Event{Kind: "b"})
	assert.Equal(t, "b", (<-second).Kind)
	cancelSecond()
	assert.Equal(t, 0, h.Subscribers())
}

func TestHubDoesNotBlockOnSlowSubscriber(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(1)
	defer cancel()

	h.Emit(lockbox.Event{Kind: "kept"})
	h.Emit(lockbox.Event{Kind: "lost"})
	h.Emit(lockbox.Event{Kind: "lost"})

	assert.Equal(t, uint64(2), h.Dropped())
	assert.Equal(t, "kept", (<-ch).Kind)
}

type publisherMock struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (p *publisherMock) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func TestNATSEmitterPublishesJSON(t *testing.T) {
	pub := &publisherMock{}
	em := NewNATSEmitter(pub, "", nil)

	em.Emit(lockbox.Event{
		Kind:       "htlc.deposit.opened",
		Key:        []byte("box"),
		Attributes: map[string]string{"amount": "1 ABC"},
	})

	assert.Equal(t, []string{"lockbox.htlc.deposit.opened"}, pub.subjects)

	var got lockbox.Event
	assert.Nil(t, json.Unmarshal(pub.payloads[0], &got))
	assert.Equal(t, "htlc.deposit.opened", got.Kind)
	assert.Equal(t, []byte("box"), got.Key)
	assert.Equal(t, "1 ABC", got.Attributes["amount"])
}

func TestNATSEmitterIgnoresPublishFailure(t *testing.T) {
	pub := &publisherMock{err: errors.New("connection closed")}
	em := NewNATSEmitter(pub, "custom", nil)

	// Must not panic.
	em.Emit(lockbox.Event{Kind: "ledger.liquidity.increased"})

	assert.Equal(t, "custom.x", em.Subject("x"))
	assert.Equal(t, 0, len(pub.subjects))
}

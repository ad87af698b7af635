package mqtt

import (
	"sync"

	"shopfloor/internal/storage"
)

// Message is one recorded publication.
type Message struct {
	Topic   string
	QoS     byte
	Payload []byte
}

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	mu sync.Mutex

	Topics Topics

	Events   []storage.Event
	Messages []Message

	// PublishError, if set, is returned by PublishEvent.
	PublishError error

	Closed bool
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) PublishEvent(ev storage.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.PublishError != nil {
		return f.PublishError
	}

	payload, err := FormatPayload(ev)
	if err != nil {
		return err
	}

	f.Events = append(f.Events, ev)
	f.Messages = append(f.Messages, Message{Topic: f.Topics.Events(), QoS: 0, Payload: payload})
	if IsAlert(ev) {
		f.Messages = append(f.Messages, Message{Topic: f.Topics.Alert(ev.StationID), QoS: 1, Payload: payload})
	}

	return nil
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Snapshot returns a copy of the recorded messages.
func (f *FakePublisher) Snapshot() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.Messages))
	copy(out, f.Messages)
	return out
}

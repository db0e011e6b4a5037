package messenger

import (
	"context"
	"fmt"
	"sync"
)

// Fake is an in-memory Messenger for tests.
type Fake struct {
	mu       sync.Mutex
	channels []Channel
	sent     []SentMessage
	nextID   int

	// FindCalls and CreateCalls count collaborator calls.
	FindCalls   int
	CreateCalls int

	// SendErr, when set, is consulted before each send. A non-nil result
	// fails that send.
	SendErr func(msg Message) error
	// FindErr and CreateErr force failures of the channel calls.
	FindErr   error
	CreateErr error
}

// SentMessage records a delivered message.
type SentMessage struct {
	ChannelID string
	Message   Message
}

// NewFake returns a Fake seeded with existing channel names.
func NewFake(existing ...string) *Fake {
	f := &Fake{}
	for _, name := range existing {
		f.addChannel(name)
	}
	return f
}

func (f *Fake) addChannel(name string) Channel {
	f.nextID++
	ch := Channel{ID: fmt.Sprintf("chan-%d", f.nextID), Name: name}
	f.channels = append(f.channels, ch)
	return ch
}

func (f *Fake) FindChannel(_ context.Context, name string) (Channel, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FindCalls++
	if f.FindErr != nil {
		return Channel{}, false, f.FindErr
	}
	for _, ch := range f.channels {
		if ch.Name == name {
			return ch, true, nil
		}
	}
	return Channel{}, false, nil
}

func (f *Fake) CreateChannel(_ context.Context, name string) (Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return Channel{}, f.CreateErr
	}
	return f.addChannel(name), nil
}

func (f *Fake) Send(_ context.Context, channelID string, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		if err := f.SendErr(msg); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, SentMessage{ChannelID: channelID, Message: msg})
	return nil
}

// Channels returns the channels known to the fake.
func (f *Fake) Channels() []Channel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Channel(nil), f.channels...)
}

// Sent returns every message sent so far.
func (f *Fake) Sent() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentMessage(nil), f.sent...)
}

// ChannelName returns the name for a channel id.
func (f *Fake) ChannelName(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.channels {
		if ch.ID == id {
			return ch.Name
		}
	}
	return ""
}

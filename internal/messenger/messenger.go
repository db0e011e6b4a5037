package messenger

import "context"

// Channel is a handle to a destination channel.
type Channel struct {
	ID   string
	Name string
}

// Attachment names a local file to upload.
type Attachment struct {
	Name string
	Path string
}

// Message is a single post: one attachment and optional caption text.
type Message struct {
	Attachment Attachment
	Caption    string
}

// Messenger is the chat service collaborator.
type Messenger interface {
	FindChannel(ctx context.Context, name string) (Channel, bool, error)
	CreateChannel(ctx context.Context, name string) (Channel, error)
	Send(ctx context.Context, channelID string, msg Message) error
}

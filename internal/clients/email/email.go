package email

import "context"

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Message struct {
	ToName      string
	ToEmail     string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Sender delivers a single message synchronously; callers own the decision of
// what a failed delivery means.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

package api

import (
	"fmt"
	"time"
)

// Message defines a message that should be sent to the user or group.
type Message struct {
	Text string
	Time time.Time
}

// NewMessage creates a new message.
func NewMessage(txt string) *Message {
	return &Message{
		Text: txt,
		Time: time.Now(),
	}
}

// AddLine adds a line argument to the message.
func (m *Message) AddLine(txt string) *Message {
	m.Text = fmt.Sprintf("%s\n%s", m.Text, txt)
	return m
}

// ReferenceTime adds a reference time to the message.
func (m *Message) ReferenceTime(t time.Time) *Message {
	m.Time = t
	return m
}

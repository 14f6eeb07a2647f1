package local

import (
	"sync"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/rs/zerolog/log"
)

// User is a local user that logs the messages and keeps them in memory.
type User struct {
	Messages []api.Message
	lock     *sync.RWMutex
}

func NewUser() *User {
	return &User{
		Messages: make([]api.Message, 0),
		lock:     new(sync.RWMutex),
	}
}

func (v *User) Send(message *api.Message) error {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.Messages = append(v.Messages, *message)
	log.Info().
		Str("user", "local").
		Time("time", message.Time).
		Str("text", message.Text).
		Msg("message")
	return nil
}

// Sent returns a copy of the messages sent so far.
func (v *User) Sent() []api.Message {
	v.lock.RLock()
	defer v.lock.RUnlock()
	mm := make([]api.Message, len(v.Messages))
	copy(mm, v.Messages)
	return mm
}

package events

import (
	"testing"

	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestBus_Publish(t *testing.T) {

	type test struct {
		handlers int
		events   []string
		expected []string
	}

	tests := map[string]test{
		"no-subscribers": {
			events:   []string{"a"},
			expected: []string{},
		},
		"single": {
			handlers: 1,
			events:   []string{"a", "b"},
			expected: []string{"0-a", "0-b"},
		},
		"in-subscription-order": {
			handlers: 3,
			events:   []string{"a"},
			expected: []string{"0-a", "1-a", "2-a"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			received := make([]string, 0)
			bus := NewBus[string]("test")
			for i := 0; i < tt.handlers; i++ {
				i := i
				bus.Subscribe(func(event string) {
					received = append(received, string(rune('0'+i))+"-"+event)
				})
			}
			for _, e := range tt.events {
				bus.Publish(e)
			}
			assert.Equal(t, tt.expected, received)
		})
	}
}

func TestBus_PanickingHandler(t *testing.T) {
	count := 0
	bus := NewBus[model.CrossEvent]("test").
		Subscribe(func(event model.CrossEvent) {
			panic("boom")
		}).
		Subscribe(func(event model.CrossEvent) {
			count++
		})

	assert.NotPanics(t, func() {
		bus.Publish(model.CrossEvent{Type: model.Golden})
	})
	assert.Equal(t, 1, count)
}

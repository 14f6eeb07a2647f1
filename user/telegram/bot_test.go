package telegram

import (
	"testing"

	"github.com/drakos74/free-coin-cross/internal/api"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ api.User = (*Bot)(nil)

type mockBot struct {
	output []tgbotapi.MessageConfig
}

func (m *mockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		m.output = append(m.output, msg)
	}
	return tgbotapi.Message{}, nil
}

func TestBot_Send(t *testing.T) {
	mock := &mockBot{}
	bot := &Bot{
		bot:    mock,
		chatID: 123,
	}

	err := bot.Send(api.NewMessage("golden cross").AddLine("BTC"))
	require.NoError(t, err)
	require.Len(t, mock.output, 1)
	assert.Equal(t, int64(123), mock.output[0].ChatID)
	assert.Equal(t, "golden cross\nBTC", mock.output[0].Text)
}

func TestBot_SendFailure(t *testing.T) {
	bot := &Bot{
		bot:    Void{},
		chatID: 123,
	}
	assert.Error(t, bot.Send(api.NewMessage("text")))
}

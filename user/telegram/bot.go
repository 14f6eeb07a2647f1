package telegram

import (
	"fmt"

	"github.com/drakos74/free-coin-cross/internal/account"
	"github.com/drakos74/free-coin-cross/internal/api"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/rs/zerolog/log"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot defines the telegram bot api.User implementation.
type Bot struct {
	bot    botAPI
	chatID int64
}

// NewBot creates a new telegram bot posting to the chat of the token.
func NewBot(token account.Token) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(token.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating bot: %w", err)
	}
	bot.Buffer = 0
	log.Info().Str("bot", bot.Self.UserName).Int64("chat", token.ID).Msg("telegram bot ready")
	return &Bot{
		bot:    bot,
		chatID: token.ID,
	}, nil
}

// Send sends the given message to the telegram chat.
func (b *Bot) Send(message *api.Message) error {
	msg := tgbotapi.NewMessage(b.chatID, message.Text)
	_, err := b.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("could not send message: %w", err)
	}
	return nil
}

package notify

import (
	"fmt"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/emoji"
	"github.com/drakos74/free-coin-cross/internal/events"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/rs/zerolog/log"
)

// Forward pushes the crosses and order events of the hub to the user.
// Delivery failures are logged and dropped.
func Forward(hub *events.Hub, user api.User) {
	hub.Crosses.Subscribe(func(event model.CrossEvent) {
		send(user, api.NewMessage(Format(event)).
			ReferenceTime(event.Time))
	})
	hub.OrdersPlaced.Subscribe(func(event events.OrderPlaced) {
		order := event.Order
		send(user, api.NewMessage(fmt.Sprintf("%s %s limit %s %.3f @ %.2f",
			emoji.MapOpen(true),
			order.Symbol,
			order.Side,
			order.Quantity,
			order.LimitPrice)).
			AddLine(fmt.Sprintf("%s order %s", emoji.Money, order.OrderID)).
			ReferenceTime(order.CreatedAt))
	})
	hub.OrderErrors.Subscribe(func(event events.OrderError) {
		send(user, api.NewMessage(fmt.Sprintf("%s %s %s failed",
			emoji.Error,
			event.Action,
			event.Symbol)).
			AddLine(event.Err.Error()))
	})
}

func send(user api.User, message *api.Message) {
	if err := user.Send(message); err != nil {
		log.Error().Err(err).Str("text", message.Text).Msg("could not notify user")
	}
}

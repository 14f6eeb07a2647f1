package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/drakos74/free-coin-cross/client/binance"
	"github.com/drakos74/free-coin-cross/client/local"
	"github.com/drakos74/free-coin-cross/client/rest"
	"github.com/drakos74/free-coin-cross/infra/config"
	coin "github.com/drakos74/free-coin-cross/internal"
	"github.com/drakos74/free-coin-cross/internal/account"
	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/events"
	"github.com/drakos74/free-coin-cross/internal/metrics"
	"github.com/drakos74/free-coin-cross/internal/notify"
	"github.com/drakos74/free-coin-cross/internal/server"
	localuser "github.com/drakos74/free-coin-cross/user/local"
	"github.com/drakos74/free-coin-cross/user/telegram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var configPath = flag.String("config", config.DefaultPath, "path to the configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("could not load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, cnl := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cnl()

	exchange, gateway := newGateway(cfg.Gateway)

	hub := events.NewHub()
	notify.Forward(hub, newUser(cfg.Telegram))

	engine := coin.NewEngine(coin.Config{
		Fast:      cfg.Signal.Fast,
		Slow:      cfg.Signal.Slow,
		Poll:      cfg.Schedule.Poll,
		Refresh:   cfg.Schedule.Refresh,
		AutoTrade: cfg.AutoTrade,
		Volume:    cfg.Volume,
		Recommend: cfg.Recommend,
	}, exchange, hub)

	for _, src := range cfg.Sources {
		switch src.Exchange {
		case config.SourceBinance:
			engine.AddSource(binance.NewVolumeSource(), src.Symbols...)
		case config.SourceGateway:
			if gateway == nil {
				log.Fatal().Str("source", src.Exchange).Msg("gateway source requires a rest gateway")
			}
			engine.AddSource(gateway, src.Symbols...)
		case config.SourceLocal:
			engine.AddSource(local.NewVolumeSource(local.Name), src.Symbols...)
		}
	}

	srv := server.NewServer("free-coin-cross", cfg.Server.Port).
		Add(server.Live()).
		Add(engine.Routes()...).
		Handle("/metrics", metrics.Handler())
	if cfg.Server.Debug {
		srv.Debug()
	}

	go engine.Run(ctx)

	log.Info().
		Bool("auto-trade", cfg.AutoTrade).
		Str("gateway", cfg.Gateway.Type).
		Int("port", cfg.Server.Port).
		Msg("started free-coin-cross")

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("stopped free-coin-cross")
}

// newGateway returns the order gateway and, for the rest type, the concrete client
// so it can double as a volume source.
func newGateway(cfg config.Gateway) (api.Exchange, *rest.Exchange) {
	if cfg.Type == config.GatewayLocal {
		log.Warn().Msg("using local gateway, orders are not sent to any exchange")
		return local.NewExchange(), nil
	}
	secret, err := account.LoadSecret(cfg.Account.Format())
	if err != nil {
		log.Fatal().Err(err).Str("account", string(cfg.Account.Name)).Msg("could not load gateway credentials")
	}
	client := rest.NewClient(cfg.URL, secret).
		WithRecvWindow(cfg.RecvWindow).
		WithTimeout(cfg.Timeout)
	exchange := rest.NewExchange(client)
	return exchange, exchange
}

func newUser(cfg config.Telegram) api.User {
	if !cfg.Enabled {
		return localuser.NewUser()
	}
	token, err := account.LoadToken(account.NewFormat(cfg.Account, ""))
	if err != nil {
		log.Fatal().Err(err).Msg("could not load telegram token")
	}
	bot, err := telegram.NewBot(token)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start telegram bot")
	}
	return bot
}

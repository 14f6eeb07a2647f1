package binance

import (
	"context"
	"fmt"
	"strconv"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/rs/zerolog/log"
)

// Name is the exchange name of binance.
const Name api.ExchangeName = "binance"

// VolumeSource reads the rolling 24h quote volume from the binance ticker statistics.
type VolumeSource struct {
	api exchange
}

// NewVolumeSource creates a new binance volume source.
func NewVolumeSource() *VolumeSource {
	return &VolumeSource{
		api: newBinanceAPI(),
	}
}

func (s *VolumeSource) Name() api.ExchangeName {
	return Name
}

// QuoteVolume returns the 24h quote volume for the signal symbol.
func (s *VolumeSource) QuoteVolume(ctx context.Context, symbol string) (float64, error) {
	pair := model.Pair(symbol)
	stats, err := s.api.PriceChangeStats(ctx, pair)
	if err != nil {
		return 0, fmt.Errorf("could not get ticker stats for %s: %s: %w", pair, err.Error(), api.NetworkErr)
	}
	for _, stat := range stats {
		if stat == nil || stat.Symbol != pair {
			continue
		}
		volume, err := strconv.ParseFloat(stat.QuoteVolume, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse quote volume '%s' for %s: %w", stat.QuoteVolume, pair, err)
		}
		log.Trace().Str("symbol", pair).Float64("volume", volume).Msg("quote volume")
		return volume, nil
	}
	return 0, fmt.Errorf("no ticker stats for %s: %w", pair, api.NotFoundErr)
}

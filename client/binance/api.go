package binance

import (
	"context"

	"github.com/adshao/go-binance/v2"
)

type exchange interface {
	PriceChangeStats(ctx context.Context, symbol string) (res []*binance.PriceChangeStats, err error)
}

type binanceAPI struct {
	client *binance.Client
}

// newBinanceAPI creates the public market data api.
// The 24h statistics need no credentials.
func newBinanceAPI() *binanceAPI {
	return &binanceAPI{client: binance.NewClient("", "")}
}

func (b *binanceAPI) PriceChangeStats(ctx context.Context, symbol string) (res []*binance.PriceChangeStats, err error) {
	return b.client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
}

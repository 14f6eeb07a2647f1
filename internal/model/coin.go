package model

import "strings"

// Coin defines a custom coin type
type Coin string

const (
	// NoCoin is a undefined coin
	NoCoin Coin = ""
	// BTC represents bitcoin
	BTC Coin = "BTC"
	// ETH represents the ethereum token
	ETH Coin = "ETH"
	// SOL represents solana
	SOL Coin = "SOL"
	// XRP represents the xrp token
	XRP Coin = "XRP"
	// DOT represents the dot
	DOT Coin = "DOT"
	// LINK represents link
	LINK Coin = "LINK"
	// DOGE represents dogecoin
	DOGE Coin = "DOGE"
	// USDT is the quote coin all positions are sized against.
	USDT Coin = "USDT"
)

// pairs holds the exchange order symbols for the signal symbols we know about.
var pairs = map[Coin]string{
	BTC:  "BTCUSDT",
	ETH:  "ETHUSDT",
	SOL:  "SOLUSDT",
	XRP:  "XRPUSDT",
	DOT:  "DOTUSDT",
	LINK: "LINKUSDT",
	DOGE: "DOGEUSDT",
}

// Pair returns the exchange order symbol for the given signal symbol.
// Unknown symbols are quoted against USDT.
func Pair(symbol string) string {
	c := Coin(strings.ToUpper(symbol))
	if p, ok := pairs[c]; ok {
		return p
	}
	if c != USDT && strings.HasSuffix(string(c), string(USDT)) {
		return string(c)
	}
	return string(c) + string(USDT)
}

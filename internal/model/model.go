package model

import (
	"fmt"
	"strings"
)

const delimiter = "-"

// Key identifies a time series by exchange and symbol.
type Key struct {
	Exchange string `json:"exchange"`
	Symbol   string `json:"symbol"`
}

// NewKey creates a new series key
func NewKey(exchange, symbol string) Key {
	return Key{
		Exchange: strings.ToLower(exchange),
		Symbol:   strings.ToUpper(symbol),
	}
}

// String creates a string representation of the key.
func (k Key) String() string {
	return fmt.Sprintf("%s%s%s", k.Exchange, delimiter, k.Symbol)
}

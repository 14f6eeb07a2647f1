package api

import (
	"errors"
	"fmt"
)

var (
	// ValidationErr marks requests that refer to unknown or unusable entities.
	ValidationErr = errors.New("validation error")
	// NotFoundErr marks a reference to an unknown recommendation or order.
	NotFoundErr = fmt.Errorf("not found: %w", ValidationErr)
	// ExpiredErr marks a recommendation used past its expiry.
	ExpiredErr = fmt.Errorf("expired: %w", ValidationErr)
	// InsufficientBalanceErr marks a balance too low for the requested trade.
	InsufficientBalanceErr = errors.New("insufficient balance")
	// NetworkErr marks a transport failure while calling the exchange.
	NetworkErr = errors.New("network error")
)

// ExchangeError is a non-success response of the exchange api.
type ExchangeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("exchange error [%d]: %s", e.Code, e.Message)
}

// IsExchangeError returns the exchange error wrapped in err, if any.
func IsExchangeError(err error) (*ExchangeError, bool) {
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return exErr, true
	}
	return nil, false
}

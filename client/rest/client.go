package rest

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/drakos74/free-coin-cross/internal/account"
	"github.com/drakos74/free-coin-cross/internal/api"
	cointime "github.com/drakos74/free-coin-cross/internal/time"
	"github.com/rs/zerolog/log"
)

const (
	headerKey        = "X-API-KEY"
	headerSign       = "X-SIGN"
	headerTimestamp  = "X-TIMESTAMP"
	headerRecvWindow = "X-RECV-WINDOW"

	defaultRecvWindow = 5 * time.Second
	defaultTimeout    = 10 * time.Second
)

// Client is the signed http client of the exchange api.
type Client struct {
	base       string
	secret     account.Secret
	recvWindow time.Duration
	http       *http.Client
	now        func() time.Time
}

// NewClient creates a new api client for the given base url.
func NewClient(base string, secret account.Secret) *Client {
	return &Client{
		base:       strings.TrimSuffix(base, "/"),
		secret:     secret,
		recvWindow: defaultRecvWindow,
		http:       &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
	}
}

// WithRecvWindow sets the validity window of the signed requests.
func (c *Client) WithRecvWindow(window time.Duration) *Client {
	if window > 0 {
		c.recvWindow = window
	}
	return c
}

// WithTimeout sets the timeout of the http calls.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.http.Timeout = timeout
	}
	return c
}

// Sign creates the hex encoded hmac-sha256 signature of the request.
func Sign(secret, timestamp, key, recvWindow, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + key + recvWindow + payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	payload := query.Encode()
	target := c.base + path
	if payload != "" {
		target = target + "?" + payload
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("could not create request for %s: %w", path, err)
	}
	return c.do(req, path, payload, result)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("could not encode request for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not create request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, string(payload), result)
}

func (c *Client) do(req *http.Request, path, payload string, result interface{}) error {
	timestamp := strconv.FormatInt(cointime.ToMilli(c.now()), 10)
	window := strconv.FormatInt(c.recvWindow.Milliseconds(), 10)
	req.Header.Set(headerKey, c.secret.Key)
	req.Header.Set(headerTimestamp, timestamp)
	req.Header.Set(headerRecvWindow, window)
	req.Header.Set(headerSign, Sign(c.secret.Secret, timestamp, c.secret.Key, window, payload))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("could not call %s: %s: %w", path, err.Error(), api.NetworkErr)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response of %s: %s: %w", path, err.Error(), api.NetworkErr)
	}

	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("invalid response of %s [%d]: %w", path, resp.StatusCode, api.NetworkErr)
	}
	if envelope.RetCode != 0 {
		log.Debug().
			Str("path", path).
			Int("code", envelope.RetCode).
			Str("message", envelope.RetMsg).
			Msg("exchange error")
		return fmt.Errorf("could not complete %s: %w", path, &api.ExchangeError{
			Code:    envelope.RetCode,
			Message: envelope.RetMsg,
		})
	}
	if result == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("could not decode result of %s: %s: %w", path, err.Error(), api.NetworkErr)
	}
	return nil
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	ID    string  `json:"id" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

func TestServer_Handle(t *testing.T) {
	srv := NewServer("test", 0).
		Add(Live()).
		AddRoute(POST, "/echo", func(ctx context.Context, r *http.Request) ([]byte, int, error) {
			var req request
			if err := ReadJson(r, false, &req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			return Ok(req)
		}).
		AddRoute(GET, "/fail/{code}", func(ctx context.Context, r *http.Request) ([]byte, int, error) {
			if Var(r, "code") == "404" {
				return nil, http.StatusNotFound, errors.New("missing")
			}
			return nil, http.StatusOK, errors.New("boom")
		})

	type test struct {
		method string
		path   string
		body   string
		code   int
		ok     bool
		err    string
	}

	tests := map[string]test{
		"health": {
			method: http.MethodGet,
			path:   "/health",
			code:   http.StatusOK,
			ok:     true,
		},
		"echo": {
			method: http.MethodPost,
			path:   "/echo",
			body:   `{"id":"a","price":1}`,
			code:   http.StatusOK,
			ok:     true,
		},
		"invalid-request": {
			method: http.MethodPost,
			path:   "/echo",
			body:   `{"price":1}`,
			code:   http.StatusBadRequest,
			err:    "invalid request",
		},
		"malformed-request": {
			method: http.MethodPost,
			path:   "/echo",
			body:   `{"id":`,
			code:   http.StatusBadRequest,
			err:    "could not decode body",
		},
		"not-found": {
			method: http.MethodGet,
			path:   "/fail/404",
			code:   http.StatusNotFound,
			err:    "missing",
		},
		"internal-error": {
			method: http.MethodGet,
			path:   "/fail/500",
			code:   http.StatusInternalServerError,
			err:    "boom",
		},
		"wrong-method": {
			method: http.MethodGet,
			path:   "/echo",
			code:   http.StatusMethodNotAllowed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusMethodNotAllowed {
				return
			}
			var response Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.ok, response.Success)
			if tt.err != "" {
				assert.Contains(t, response.Error, tt.err)
			}
		})
	}
}

package coin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/drakos74/free-coin-cross/internal/model"
	"github.com/drakos74/free-coin-cross/internal/server"
)

// ExecuteRequest is the payload for executing a recommendation.
// A missing limit price executes at the default price of the recommendation.
type ExecuteRequest struct {
	RecommendationID string   `json:"recommendationId" validate:"required"`
	LimitPrice       *float64 `json:"limitPrice" validate:"omitempty,gt=0"`
}

// CancelRequest is the payload for cancelling an order.
type CancelRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

// VolumeResponse is the volume history of a series with its moving averages.
type VolumeResponse struct {
	Exchange string                     `json:"exchange"`
	Symbol   string                     `json:"symbol"`
	Fast     int                        `json:"fast"`
	Slow     int                        `json:"slow"`
	Points   []model.MovingAveragePoint `json:"points"`
}

// Routes returns the http routes of the engine.
func (e *Engine) Routes() []server.Route {
	return []server.Route{
		{Path: "/execute-limit-long", Method: server.POST, Exec: e.executeLimitLong},
		{Path: "/cancel-order", Method: server.POST, Exec: e.cancelOrder},
		{Path: "/active-orders", Method: server.GET, Exec: e.activeOrders},
		{Path: "/active-orders/{symbol}", Method: server.GET, Exec: e.activeOrders},
		{Path: "/recent-crosses", Method: server.GET, Exec: e.recentCrosses},
		{Path: "/notifications/stats", Method: server.GET, Exec: e.notificationStats},
		{Path: "/recommendations", Method: server.GET, Exec: e.recommendations},
		{Path: "/recommendations/{id}/cancel", Method: server.POST, Exec: e.cancelRecommendation},
		{Path: "/volume/{exchange}/{symbol}", Method: server.GET, Exec: e.volume},
	}
}

func (e *Engine) executeLimitLong(ctx context.Context, r *http.Request) ([]byte, int, error) {
	var request ExecuteRequest
	if err := server.ReadJson(r, false, &request); err != nil {
		return nil, http.StatusBadRequest, err
	}
	result, err := e.executor.ExecuteByID(ctx, request.RecommendationID, request.LimitPrice)
	if err != nil {
		if errors.Is(err, api.NotFoundErr) || errors.Is(err, api.ExpiredErr) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusInternalServerError, err
	}
	return server.Json(server.Response{
		Success: result.Success,
		Data:    result,
		Error:   result.Error,
	}, http.StatusOK)
}

func (e *Engine) cancelOrder(ctx context.Context, r *http.Request) ([]byte, int, error) {
	var request CancelRequest
	if err := server.ReadJson(r, false, &request); err != nil {
		return nil, http.StatusBadRequest, err
	}
	ok, err := e.executor.Cancel(ctx, request.OrderID)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return server.Json(server.Response{
		Success: ok,
	}, http.StatusOK)
}

func (e *Engine) activeOrders(ctx context.Context, r *http.Request) ([]byte, int, error) {
	if symbol := server.Var(r, "symbol"); symbol != "" {
		return server.Ok(e.executor.ListActiveBySymbol(symbol))
	}
	return server.Ok(e.executor.ListActive())
}

// recentCrosses returns the undelivered notifications and marks them as delivered, unless mark=false.
func (e *Engine) recentCrosses(ctx context.Context, r *http.Request) ([]byte, int, error) {
	mark := true
	if m := r.URL.Query().Get("mark"); m != "" {
		b, err := strconv.ParseBool(m)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		mark = b
	}
	return server.Ok(e.ledger.Take(mark))
}

func (e *Engine) notificationStats(ctx context.Context, r *http.Request) ([]byte, int, error) {
	return server.Json(e.ledger.Stats(), http.StatusOK)
}

func (e *Engine) recommendations(ctx context.Context, r *http.Request) ([]byte, int, error) {
	return server.Ok(e.pool.List())
}

func (e *Engine) cancelRecommendation(ctx context.Context, r *http.Request) ([]byte, int, error) {
	rec, err := e.pool.Cancel(server.Var(r, "id"))
	if err != nil {
		return nil, http.StatusNotFound, err
	}
	return server.Ok(rec)
}

func (e *Engine) volume(ctx context.Context, r *http.Request) ([]byte, int, error) {
	key := model.NewKey(server.Var(r, "exchange"), server.Var(r, "symbol"))
	return server.Ok(VolumeResponse{
		Exchange: key.Exchange,
		Symbol:   key.Symbol,
		Fast:     e.config.Fast,
		Slow:     e.config.Slow,
		Points:   e.store.Series(key.Exchange, key.Symbol, e.config.Fast, e.config.Slow),
	})
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/pkg/logger"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"
)

// SubmitOrderRequest describes a market order to be submitted to the broker.
type SubmitOrderRequest struct {
	ClientOrderID  string
	Symbol         string
	Direction      entity.TradeDirection
	Quantity       decimal.Decimal
	ReferencePrice float64
}

// OrderResult is the broker's answer to a submitted order.
type OrderResult struct {
	Status         entity.TradeStatus
	FillPrice      float64
	FilledQuantity float64
	Raw            json.RawMessage
}

// BrokerRepository is the boundary to the external order submission provider.
type BrokerRepository interface {
	SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*OrderResult, error)
}

// NewAlpacaBrokerRepository creates a broker repository that submits paper
// orders through the Alpaca trading API.
func NewAlpacaBrokerRepository(cfg *config.Config, log *logger.Logger) BrokerRepository {
	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:     cfg.Alpaca.APIKey,
		APISecret:  cfg.Alpaca.APISecret,
		BaseURL:    cfg.Alpaca.BaseURL,
		RetryLimit: 3,
	})
	return &alpacaBrokerRepository{client: client, log: log}
}

type alpacaBrokerRepository struct {
	client *alpaca.Client
	log    *logger.Logger
}

func (r *alpacaBrokerRepository) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*OrderResult, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("order quantity %s is not positive", req.Quantity.String())
	}

	side := alpaca.Buy
	if req.Direction == entity.TradeDirectionSell {
		side = alpaca.Sell
	}

	type result struct {
		order *alpaca.Order
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		order, err := r.client.PlaceOrder(alpaca.PlaceOrderRequest{
			Symbol:        req.Symbol,
			Qty:           &req.Quantity,
			Side:          side,
			Type:          alpaca.Market,
			TimeInForce:   alpaca.Day,
			ClientOrderID: req.ClientOrderID,
		})
		ch <- result{order: order, err: err}
	}()

	var order *alpaca.Order
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("order submission for %s: %w", req.Symbol, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("order submission for %s: %w", req.Symbol, res.err)
		}
		order = res.order
	}

	raw, err := json.Marshal(order)
	if err != nil {
		raw = nil
	}

	out := &OrderResult{
		Status:         entity.TradeStatusFilled,
		FilledQuantity: req.Quantity.InexactFloat64(),
		FillPrice:      req.ReferencePrice,
		Raw:            raw,
	}
	if order.FilledAvgPrice != nil {
		out.FillPrice = order.FilledAvgPrice.InexactFloat64()
	}
	if !order.FilledQty.IsZero() {
		out.FilledQuantity = order.FilledQty.InexactFloat64()
	}

	r.log.DebugContext(ctx, "Order submitted",
		logger.StringField("symbol", req.Symbol),
		logger.StringField("alpaca_order_id", order.ID),
		logger.StringField("status", string(order.Status)))

	return out, nil
}

// NewSimulatedBrokerRepository creates a broker repository that fills every
// order locally at the reference price. Used when Alpaca credentials are not
// configured, so the rest of the engine behaves identically.
func NewSimulatedBrokerRepository(log *logger.Logger) BrokerRepository {
	return &simulatedBrokerRepository{log: log}
}

type simulatedBrokerRepository struct {
	log *logger.Logger
}

func (r *simulatedBrokerRepository) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*OrderResult, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("order quantity %s is not positive", req.Quantity.String())
	}
	if req.ReferencePrice <= 0 {
		return nil, fmt.Errorf("no reference price available for %s", req.Symbol)
	}

	r.log.DebugContext(ctx, "Simulated order fill",
		logger.StringField("symbol", req.Symbol),
		logger.StringField("quantity", req.Quantity.String()))

	return &OrderResult{
		Status:         entity.TradeStatusFilled,
		FillPrice:      req.ReferencePrice,
		FilledQuantity: req.Quantity.InexactFloat64(),
	}, nil
}

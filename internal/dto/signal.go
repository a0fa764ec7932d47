package dto

// SignalDirection is the directional recommendation of the signal engine.
type SignalDirection string

const (
	SignalBuy  SignalDirection = "buy"
	SignalSell SignalDirection = "sell"
	SignalHold SignalDirection = "hold"
)

// Signal is the value object produced by evaluating a strategy.
type Signal struct {
	Symbol          string          `json:"symbol"`
	Direction       SignalDirection `json:"direction"`
	PredictedReturn float64         `json:"predicted_return"`
	Strength        float64         `json:"strength"`
	Slope           float64         `json:"slope"`
	Intercept       float64         `json:"intercept"`
	Observations    int             `json:"observations"`
	MeanReturn      float64         `json:"mean_return"`
	StdDevReturn    float64         `json:"std_dev_return"`
}

// RunStrategyResponse is the DTO returned when a strategy is executed.
// Trade is nil when the signal direction is hold or the sized quantity is zero.
type RunStrategyResponse struct {
	Signal *Signal        `json:"signal"`
	Trade  *TradeResponse `json:"trade,omitempty"`
}

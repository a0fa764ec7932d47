package telegram

import (
	"fmt"
	"strings"

	"portfolio-tracker/internal/entity"
)

// FormatTradeForTelegram formats an executed trade into a Markdown message.
func FormatTradeForTelegram(trade *entity.Trade) string {
	var b strings.Builder

	var icon string
	switch trade.Status {
	case entity.TradeStatusFilled:
		icon = "✅"
	case entity.TradeStatusRejected:
		icon = "❌"
	default:
		icon = "⏳"
	}

	b.WriteString(fmt.Sprintf("%s *Paper Trade %s*\n\n", icon, strings.ToUpper(string(trade.Status))))
	b.WriteString(fmt.Sprintf("📈 *Symbol:* %s\n", trade.Symbol))
	b.WriteString(fmt.Sprintf("↕️ *Side:* %s\n", strings.ToUpper(string(trade.Direction))))
	b.WriteString(fmt.Sprintf("🔢 *Quantity:* %.0f\n", trade.Quantity))
	if trade.Price > 0 {
		b.WriteString(fmt.Sprintf("💵 *Price:* %.2f\n", trade.Price))
	}
	b.WriteString(fmt.Sprintf("🔮 *Predicted Return:* %.4f\n", trade.PredictedReturn))
	b.WriteString(fmt.Sprintf("🎯 *Signal Strength:* %.4f\n", trade.Confidence))
	if trade.StatusReason != "" {
		b.WriteString(fmt.Sprintf("📝 *Reason:* %s\n", trade.StatusReason))
	}

	return b.String()
}

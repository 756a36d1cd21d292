// Package funds derives the canonical margin snapshot from a broker
// account record.
package funds

import (
	"github.com/shopspring/decimal"

	"tradelink/internal/broker"
	"tradelink/internal/domain"
	"tradelink/internal/util"
)

// DeriveMargin computes the canonical funds view from an account snapshot.
// It is total: malformed fields degrade to zero rather than failing, so a
// funds dashboard always receives a well-formed structure.
//
// The P&L figures are heuristics, not broker-reported truth: unrealized is
// approximated as equity − cash (only when both are positive) and realized
// as equity − last_equity (only when last equity is positive). Callers
// needing authoritative P&L should read the account record directly.
func DeriveMargin(account broker.Account) domain.MarginSnapshot {
	cash := util.Float(account.Cash, 0)
	buyingPower := util.Float(account.BuyingPower, 0)
	equity := util.Float(account.Equity, 0)
	lastEquity := util.Float(account.LastEquity, 0)
	initialMargin := util.Float(account.InitialMargin, 0)

	unrealized := 0.0
	if equity > 0 && cash > 0 {
		unrealized = equity - cash
	}
	realized := 0.0
	if lastEquity > 0 {
		realized = equity - lastEquity
	}

	return domain.MarginSnapshot{
		AvailableCash: money(cash),
		// Margin available beyond cash; negative when buying power is
		// below cash, deliberately not clamped.
		Collateral:     money(buyingPower - cash),
		UtilisedDebits: money(initialMargin),
		UnrealizedPNL:  money(unrealized),
		RealizedPNL:    money(realized),
	}
}

// ZeroMargin is the all-zero snapshot returned when the account cannot be
// fetched at all.
func ZeroMargin() domain.MarginSnapshot {
	return domain.MarginSnapshot{
		AvailableCash:  "0.00",
		Collateral:     "0.00",
		UtilisedDebits: "0.00",
		UnrealizedPNL:  "0.00",
		RealizedPNL:    "0.00",
	}
}

// money renders a monetary value as a fixed two-decimal string.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// AvailableMargin reports the margin still deployable for new orders:
// buying power minus margin already in use, floored at zero.
func AvailableMargin(account broker.Account) float64 {
	available := util.Float(account.BuyingPower, 0) - util.Float(account.InitialMargin, 0)
	if available < 0 {
		return 0
	}
	return available
}

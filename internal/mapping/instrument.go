package mapping

import (
	"tradelink/internal/broker"
	"tradelink/internal/domain"
)

// US equities: unit lots, penny ticks, no derivatives attributes.
const (
	equityLotSize  = 1
	equityTickSize = 0.01
	equityType     = "EQ"
)

// brokerExchangeMap normalizes the broker's listing-exchange vocabulary to
// canonical exchanges. Venues without a canonical identity fold into their
// parent family; anything unknown defaults to NASDAQ.
var brokerExchangeMap = map[string]string{
	"NASDAQ": domain.ExchangeNASDAQ,
	"NYSE":   domain.ExchangeNYSE,
	"AMEX":   domain.ExchangeAMEX,
	"ARCA":   domain.ExchangeNYSE,
	"BATS":   domain.ExchangeNASDAQ,
	"IEX":    domain.ExchangeNASDAQ,
}

// FromBrokerExchange maps a broker listing exchange to its canonical
// exchange, defaulting to NASDAQ for unknown venues.
func FromBrokerExchange(brokerExchange string) string {
	if canonical, ok := brokerExchangeMap[brokerExchange]; ok {
		return canonical
	}
	return domain.ExchangeNASDAQ
}

// InstrumentFromAsset builds a catalog row from one asset-feed entry. The
// asset id is carried as an opaque token; the broker uses the plain symbol
// on every other surface.
func InstrumentFromAsset(a broker.Asset) domain.Instrument {
	return domain.Instrument{
		Symbol:         a.Symbol,
		BrokerSymbol:   a.Symbol,
		Name:           a.Name,
		Exchange:       FromBrokerExchange(a.Exchange),
		BrokerExchange: a.Exchange,
		Token:          a.ID,
		Expiry:         "",
		Strike:         0.0,
		LotSize:        equityLotSize,
		InstrumentType: equityType,
		TickSize:       equityTickSize,
	}
}

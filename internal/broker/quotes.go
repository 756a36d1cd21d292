package broker

import (
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// QuoteClient fetches best bid/offer snapshots from the Alpaca market-data
// API. Alpaca provides no order-book feed, so market depth is synthesized
// from the latest quote as a single bid and ask level.
type QuoteClient struct {
	client *marketdata.Client
}

// NewQuoteClient creates a QuoteClient. An empty dataURL selects the
// default market-data endpoint.
func NewQuoteClient(apiKey, apiSecret, dataURL string) *QuoteClient {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &QuoteClient{client: marketdata.NewClient(opts)}
}

// LatestQuote returns the latest best bid/offer for a symbol.
func (q *QuoteClient) LatestQuote(symbol string) (Quote, error) {
	mq, err := q.client.GetLatestQuote(symbol, marketdata.GetLatestQuoteRequest{})
	if err != nil {
		return Quote{}, fmt.Errorf("latest quote for %s: %w", symbol, err)
	}
	return Quote{
		Symbol:   symbol,
		BidPrice: mq.BidPrice,
		BidSize:  int(mq.BidSize),
		AskPrice: mq.AskPrice,
		AskSize:  int(mq.AskSize),
		Time:     mq.Timestamp.UTC().Format(time.RFC3339),
	}, nil
}

// MarketDepth returns a single-level depth view built from the latest
// quote, with the exchange fixed to the platform default.
func (q *QuoteClient) MarketDepth(symbol, exchange string) (Depth, error) {
	quote, err := q.LatestQuote(symbol)
	if err != nil {
		return Depth{}, err
	}
	return Depth{
		Symbol:   symbol,
		Exchange: exchange,
		Bids: []DepthLevel{
			{Price: quote.BidPrice, Quantity: quote.BidSize, Orders: 1},
		},
		Asks: []DepthLevel{
			{Price: quote.AskPrice, Quantity: quote.AskSize, Orders: 1},
		},
	}, nil
}

// Package broker defines the native record shapes of the Alpaca REST API
// and the client used to reach it. Everything above this package speaks the
// canonical schema; everything below it speaks broker-native records.
package broker

import "context"

// API abstracts the brokerage REST operations the adapter depends on.
type API interface {
	// GetOrders returns orders, optionally filtered by native status
	// ("open", "filled", "closed"). An empty status returns all orders.
	GetOrders(ctx context.Context, status string) ([]Order, error)

	// PlaceOrder submits a new order and returns the broker's order record.
	PlaceOrder(ctx context.Context, body PlaceOrderBody) (Order, error)

	// ModifyOrder patches an existing order with a partial delta.
	ModifyOrder(ctx context.Context, orderID string, body ModifyOrderBody) (Order, error)

	// CancelOrder requests cancellation of an open order by its ID.
	CancelOrder(ctx context.Context, orderID string) error

	// GetPositions returns all current positions.
	GetPositions(ctx context.Context) ([]Position, error)

	// GetAccount returns the account snapshot.
	GetAccount(ctx context.Context) (Account, error)

	// GetAssets returns the full active-equity asset universe.
	GetAssets(ctx context.Context) ([]Asset, error)
}

// AssetFeed is the narrow slice of API the contract sync engine needs.
type AssetFeed interface {
	GetAssets(ctx context.Context) ([]Asset, error)
}

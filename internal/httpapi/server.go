// Package httpapi exposes the broker adapter over a JSON REST API: order,
// trade and position books in the canonical schema, fund limits, the
// instrument catalog, and the contract sync trigger.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tradelink/internal/broker"
	"tradelink/internal/catalog"
	"tradelink/internal/domain"
	"tradelink/internal/funds"
	"tradelink/internal/mapping"
	"tradelink/internal/util"
)

// Quoter serves market data lookups.
type Quoter interface {
	LatestQuote(symbol string) (broker.Quote, error)
	MarketDepth(symbol, exchange string) (broker.Depth, error)
}

// ContractSyncer triggers a catalog refresh.
type ContractSyncer interface {
	Sync(ctx context.Context) (catalog.Result, error)
}

// Catalog is the read side of the instrument store.
type Catalog interface {
	GetSymbol(ctx context.Context, symbol, exchange string) (domain.Instrument, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Instrument, error)
}

// Server serves the adapter HTTP API.
type Server struct {
	broker  broker.API
	quotes  Quoter
	catalog Catalog
	syncer  ContractSyncer
	events  http.Handler
	log     *slog.Logger
}

// NewServer wires the adapter surfaces together. quotes, catalog, syncer
// and events may each be nil; their routes then answer 503.
func NewServer(api broker.API, quotes Quoter, cat Catalog, syncer ContractSyncer, events http.Handler, log *slog.Logger) *Server {
	return &Server{
		broker:  api,
		quotes:  quotes,
		catalog: cat,
		syncer:  syncer,
		events:  events,
		log:     log,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/orderbook", s.handleOrderBook)
	mux.HandleFunc("GET /api/tradebook", s.handleTradeBook)
	mux.HandleFunc("GET /api/positionbook", s.handlePositionBook)
	mux.HandleFunc("GET /api/holdings", s.handleHoldings)
	mux.HandleFunc("GET /api/funds", s.handleFunds)
	mux.HandleFunc("GET /api/capabilities", s.handleCapabilities)

	mux.HandleFunc("POST /api/orders", s.handlePlaceOrder)
	mux.HandleFunc("PATCH /api/orders/{id}", s.handleModifyOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", s.handleCancelOrder)
	mux.HandleFunc("POST /api/orders/cancel-all", s.handleCancelAll)

	mux.HandleFunc("POST /api/positions/{symbol}/close", s.handleClosePosition)
	mux.HandleFunc("POST /api/positions/close-all", s.handleCloseAll)

	mux.HandleFunc("POST /api/sync", s.handleSync)
	mux.HandleFunc("GET /api/symbols/{symbol}", s.handleGetSymbol)
	mux.HandleFunc("GET /api/search", s.handleSearch)

	mux.HandleFunc("GET /api/quotes/{symbol}", s.handleQuote)
	mux.HandleFunc("GET /api/depth/{symbol}", s.handleDepth)

	if s.events != nil {
		mux.Handle("GET /ws", s.events)
	}
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// brokerStatus maps a broker call failure to an HTTP status, surfacing the
// broker's own status for API errors.
func brokerStatus(err error) int {
	var apiErr *broker.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

func (s *Server) handleOrderBook(w http.ResponseWriter, r *http.Request) {
	records, err := s.broker.GetOrders(r.Context(), "all")
	if err != nil {
		s.log.Error("fetching orders", "error", err)
		writeError(w, brokerStatus(err), "failed to fetch orders")
		return
	}

	orders := mapping.MapOrders(records)
	writeJSON(w, OrderBookResponse{
		Orders:     orders,
		Statistics: mapping.CalculateOrderStatistics(orders),
	})
}

func (s *Server) handleTradeBook(w http.ResponseWriter, r *http.Request) {
	records, err := s.broker.GetOrders(r.Context(), "filled")
	if err != nil {
		s.log.Error("fetching fills", "error", err)
		writeError(w, brokerStatus(err), "failed to fetch trades")
		return
	}
	writeJSON(w, TradeBookResponse{Trades: mapping.MapTrades(records)})
}

func (s *Server) handlePositionBook(w http.ResponseWriter, r *http.Request) {
	records, err := s.broker.GetPositions(r.Context())
	if err != nil {
		s.log.Error("fetching positions", "error", err)
		writeError(w, brokerStatus(err), "failed to fetch positions")
		return
	}
	writeJSON(w, PositionBookResponse{Positions: mapping.MapPositions(records)})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	records, err := s.broker.GetPositions(r.Context())
	if err != nil {
		s.log.Error("fetching holdings", "error", err)
		writeError(w, brokerStatus(err), "failed to fetch holdings")
		return
	}

	holdings := mapping.MapHoldings(records)
	writeJSON(w, HoldingsResponse{
		Holdings:   holdings,
		Statistics: mapping.CalculatePortfolioStatistics(holdings),
	})
}

// handleFunds degrades to an all-zero snapshot when the account fetch
// fails, so fund consumers always get a well-formed payload.
func (s *Server) handleFunds(w http.ResponseWriter, r *http.Request) {
	account, err := s.broker.GetAccount(r.Context())
	if err != nil {
		s.log.Error("fetching account", "error", err)
		writeJSON(w, funds.ZeroMargin())
		return
	}
	writeJSON(w, funds.DeriveMargin(account))
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, CapabilitiesResponse{
		Exchanges:  mapping.SupportedExchanges(),
		OrderTypes: mapping.SupportedOrderTypes(),
		Timeframes: mapping.SupportedTimeframes(),
	})
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symbol == "" || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "symbol and positive quantity required")
		return
	}

	body, err := mapping.TransformOrder(req)
	if err != nil {
		var unsupported *mapping.UnsupportedExchangeError
		if errors.As(err, &unsupported) {
			writeError(w, http.StatusBadRequest, unsupported.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Pre-trade margin check for priced orders. Skipped when the account
	// snapshot is unavailable; the broker remains the authority either way.
	if req.Price > 0 {
		if account, err := s.broker.GetAccount(r.Context()); err == nil && account.BuyingPower != "" {
			if cost := req.Quantity * req.Price; cost > funds.AvailableMargin(account) {
				writeError(w, http.StatusBadRequest, "order value exceeds available margin")
				return
			}
		}
	}

	order, err := s.broker.PlaceOrder(r.Context(), body)
	if err != nil {
		s.log.Error("placing order", "symbol", req.Symbol, "error", err)
		writeError(w, brokerStatus(err), "order placement failed")
		return
	}
	writeJSON(w, PlaceOrderResponse{OrderID: order.ID})
}

func (s *Server) handleModifyOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")

	var req domain.ModifyOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := s.broker.ModifyOrder(r.Context(), orderID, mapping.TransformModifyOrder(req))
	if err != nil {
		s.log.Error("modifying order", "orderid", orderID, "error", err)
		writeError(w, brokerStatus(err), "order modification failed")
		return
	}
	writeJSON(w, PlaceOrderResponse{OrderID: order.ID})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if err := s.broker.CancelOrder(r.Context(), orderID); err != nil {
		s.log.Error("cancelling order", "orderid", orderID, "error", err)
		writeError(w, brokerStatus(err), "order cancellation failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCancelAll sweeps every open order. Per-order failures are reported
// alongside the successes rather than aborting the sweep.
func (s *Server) handleCancelAll(w http.ResponseWriter, r *http.Request) {
	open, err := s.broker.GetOrders(r.Context(), "open")
	if err != nil {
		writeError(w, brokerStatus(err), "failed to list open orders")
		return
	}

	resp := CancelAllResponse{Cancelled: []string{}}
	for _, o := range open {
		if err := s.broker.CancelOrder(r.Context(), o.ID); err != nil {
			s.log.Warn("cancel-all skip", "orderid", o.ID, "error", err)
			resp.Failed = append(resp.Failed, o.ID)
			continue
		}
		resp.Cancelled = append(resp.Cancelled, o.ID)
	}
	writeJSON(w, resp)
}

// ---------------------------------------------------------------------------
// Positions
// ---------------------------------------------------------------------------

// closePosition flattens one position with an opposing market order.
func (s *Server) closePosition(r *http.Request, pos broker.Position) (broker.Order, error) {
	qty, ok := util.PositiveInt(strings.TrimPrefix(pos.Qty, "-"))
	if !ok {
		return broker.Order{}, fmt.Errorf("position %s has no quantity", pos.Symbol)
	}

	side := "sell"
	if pos.Side == "short" || strings.HasPrefix(pos.Qty, "-") {
		side = "buy"
	}

	return s.broker.PlaceOrder(r.Context(), broker.PlaceOrderBody{
		Symbol:      pos.Symbol,
		Qty:         fmt.Sprintf("%d", qty),
		Side:        side,
		Type:        "market",
		TimeInForce: "day",
	})
}

func (s *Server) handleClosePosition(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))

	positions, err := s.broker.GetPositions(r.Context())
	if err != nil {
		writeError(w, brokerStatus(err), "failed to fetch positions")
		return
	}

	for _, pos := range positions {
		if pos.Symbol != symbol {
			continue
		}
		order, err := s.closePosition(r, pos)
		if err != nil {
			s.log.Error("closing position", "symbol", symbol, "error", err)
			writeError(w, http.StatusBadGateway, "failed to close position")
			return
		}
		writeJSON(w, PlaceOrderResponse{OrderID: order.ID})
		return
	}
	writeError(w, http.StatusNotFound, fmt.Sprintf("no open position for %s", symbol))
}

func (s *Server) handleCloseAll(w http.ResponseWriter, r *http.Request) {
	positions, err := s.broker.GetPositions(r.Context())
	if err != nil {
		writeError(w, brokerStatus(err), "failed to fetch positions")
		return
	}

	resp := CloseAllResponse{Closed: []string{}}
	for _, pos := range positions {
		if _, err := s.closePosition(r, pos); err != nil {
			s.log.Warn("close-all skip", "symbol", pos.Symbol, "error", err)
			resp.Failed = append(resp.Failed, pos.Symbol)
			continue
		}
		resp.Closed = append(resp.Closed, pos.Symbol)
	}
	writeJSON(w, resp)
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if s.syncer == nil {
		writeError(w, http.StatusServiceUnavailable, "contract sync not configured")
		return
	}

	res, err := s.syncer.Sync(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleGetSymbol(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not configured")
		return
	}

	symbol := strings.ToUpper(r.PathValue("symbol"))
	exchange := strings.ToUpper(r.URL.Query().Get("exchange"))
	if exchange == "" {
		exchange = domain.DefaultExchange
	}

	inst, err := s.catalog.GetSymbol(r.Context(), symbol, exchange)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s not found on %s", symbol, exchange))
		return
	}
	writeJSON(w, inst)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not configured")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q required")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	results, err := s.catalog.Search(r.Context(), query, limit)
	if err != nil {
		s.log.Error("catalog search", "query", query, "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if results == nil {
		results = []domain.Instrument{}
	}
	writeJSON(w, SearchResponse{Results: results})
}

// ---------------------------------------------------------------------------
// Market data
// ---------------------------------------------------------------------------

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if s.quotes == nil {
		writeError(w, http.StatusServiceUnavailable, "market data not configured")
		return
	}

	symbol := strings.ToUpper(r.PathValue("symbol"))
	quote, err := s.quotes.LatestQuote(symbol)
	if err != nil {
		s.log.Error("fetching quote", "symbol", symbol, "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch quote")
		return
	}

	writeJSON(w, QuoteResponse{
		Symbol:  symbol,
		Bid:     quote.BidPrice,
		BidSize: int64(quote.BidSize),
		Ask:     quote.AskPrice,
		AskSize: int64(quote.AskSize),
	})
}

func (s *Server) handleDepth(w http.ResponseWriter, r *http.Request) {
	if s.quotes == nil {
		writeError(w, http.StatusServiceUnavailable, "market data not configured")
		return
	}

	symbol := strings.ToUpper(r.PathValue("symbol"))
	exchange := strings.ToUpper(r.URL.Query().Get("exchange"))
	if exchange == "" {
		exchange = domain.DefaultExchange
	}

	depth, err := s.quotes.MarketDepth(symbol, exchange)
	if err != nil {
		s.log.Error("fetching depth", "symbol", symbol, "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch depth")
		return
	}
	writeJSON(w, depth)
}

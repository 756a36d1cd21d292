// Package catalog persists the instrument catalog and keeps it synchronized
// with the broker's asset universe.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tradelink/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

const schema = `
CREATE TABLE IF NOT EXISTS symtoken (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol         TEXT NOT NULL,
	brsymbol       TEXT NOT NULL,
	name           TEXT,
	exchange       TEXT,
	brexchange     TEXT,
	token          TEXT,
	expiry         TEXT,
	strike         REAL,
	lotsize        INTEGER,
	instrumenttype TEXT,
	tick_size      REAL
);
CREATE INDEX IF NOT EXISTS idx_symtoken_symbol     ON symtoken(symbol);
CREATE INDEX IF NOT EXISTS idx_symtoken_brsymbol   ON symtoken(brsymbol);
CREATE INDEX IF NOT EXISTS idx_symtoken_exchange   ON symtoken(exchange);
CREATE INDEX IF NOT EXISTS idx_symtoken_brexchange ON symtoken(brexchange);
CREATE INDEX IF NOT EXISTS idx_symbol_exchange     ON symtoken(symbol, exchange);
`

// Store is the persisted instrument catalog, backed by SQLite. Rows are
// only ever written wholesale by a sync pass; readers see either the
// pre-sync or post-sync catalog because the delete+insert pair commits as
// one transaction.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the catalog database at dbPath and ensures
// the schema exists.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplacePartition atomically replaces every instrument whose native
// exchange is in brokerExchanges with the given rows. Rows belonging to
// other broker integrations are untouched. Returns the number of rows
// deleted and inserted.
func (s *Store) ReplacePartition(ctx context.Context, brokerExchanges []string, rows []domain.Instrument) (deleted, inserted int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("beginning catalog transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(brokerExchanges)), ",")
	args := make([]any, len(brokerExchanges))
	for i, ex := range brokerExchanges {
		args[i] = ex
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM symtoken WHERE brexchange IN ("+placeholders+")", args...)
	if err != nil {
		return 0, 0, fmt.Errorf("clearing catalog partition: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		deleted = int(n)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO symtoken
			(symbol, brsymbol, name, exchange, brexchange, token, expiry, strike, lotsize, instrumenttype, tick_size)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			r.Symbol, r.BrokerSymbol, r.Name, r.Exchange, r.BrokerExchange,
			r.Token, r.Expiry, r.Strike, r.LotSize, r.InstrumentType, r.TickSize,
		); err != nil {
			return 0, 0, fmt.Errorf("inserting instrument %s: %w", r.Symbol, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing catalog replace: %w", err)
	}
	return deleted, inserted, nil
}

// Count returns the total number of catalog rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM symtoken").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting catalog rows: %w", err)
	}
	return n, nil
}

// GetSymbol returns the instrument for (symbol, exchange), or
// sql.ErrNoRows wrapped when the symbol is not in the catalog.
func (s *Store) GetSymbol(ctx context.Context, symbol, exchange string) (domain.Instrument, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT symbol, brsymbol, name, exchange, brexchange, token, expiry, strike, lotsize, instrumenttype, tick_size
		FROM symtoken WHERE symbol = ? AND exchange = ?`, symbol, exchange)

	var inst domain.Instrument
	err := row.Scan(&inst.Symbol, &inst.BrokerSymbol, &inst.Name, &inst.Exchange,
		&inst.BrokerExchange, &inst.Token, &inst.Expiry, &inst.Strike,
		&inst.LotSize, &inst.InstrumentType, &inst.TickSize)
	if err != nil {
		return domain.Instrument{}, fmt.Errorf("looking up %s on %s: %w", symbol, exchange, err)
	}
	return inst, nil
}

// Search returns up to limit instruments whose symbol or name contains the
// query, case-normalised to upper case.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]domain.Instrument, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToUpper(query) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, brsymbol, name, exchange, brexchange, token, expiry, strike, lotsize, instrumenttype, tick_size
		FROM symtoken
		WHERE symbol LIKE ? OR UPPER(name) LIKE ?
		ORDER BY symbol
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	var results []domain.Instrument
	for rows.Next() {
		var inst domain.Instrument
		if err := rows.Scan(&inst.Symbol, &inst.BrokerSymbol, &inst.Name, &inst.Exchange,
			&inst.BrokerExchange, &inst.Token, &inst.Expiry, &inst.Strike,
			&inst.LotSize, &inst.InstrumentType, &inst.TickSize); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		results = append(results, inst)
	}
	return results, rows.Err()
}

// All returns every catalog row, ordered by symbol then exchange. Used by
// the snapshot exporter.
func (s *Store) All(ctx context.Context) ([]domain.Instrument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, brsymbol, name, exchange, brexchange, token, expiry, strike, lotsize, instrumenttype, tick_size
		FROM symtoken ORDER BY symbol, exchange`)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer rows.Close()

	var results []domain.Instrument
	for rows.Next() {
		var inst domain.Instrument
		if err := rows.Scan(&inst.Symbol, &inst.BrokerSymbol, &inst.Name, &inst.Exchange,
			&inst.BrokerExchange, &inst.Token, &inst.Expiry, &inst.Strike,
			&inst.LotSize, &inst.InstrumentType, &inst.TickSize); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		results = append(results, inst)
	}
	return results, rows.Err()
}

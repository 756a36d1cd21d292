package catalog

import (
	"context"
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// instrumentRecord is one catalog row in the exported parquet file.
type instrumentRecord struct {
	Symbol         string  `parquet:"symbol"`
	BrokerSymbol   string  `parquet:"brsymbol"`
	Name           string  `parquet:"name"`
	Exchange       string  `parquet:"exchange"`
	BrokerExchange string  `parquet:"brexchange"`
	Token          string  `parquet:"token"`
	LotSize        int64   `parquet:"lotsize"`
	InstrumentType string  `parquet:"instrumenttype"`
	TickSize       float64 `parquet:"tick_size"`
}

// ExportParquet writes a snapshot of the full catalog to path as parquet.
// Returns the number of rows written.
func (s *Store) ExportParquet(ctx context.Context, path string) (int, error) {
	rows, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	records := make([]instrumentRecord, len(rows))
	for i, r := range rows {
		records[i] = instrumentRecord{
			Symbol:         r.Symbol,
			BrokerSymbol:   r.BrokerSymbol,
			Name:           r.Name,
			Exchange:       r.Exchange,
			BrokerExchange: r.BrokerExchange,
			Token:          r.Token,
			LotSize:        int64(r.LotSize),
			InstrumentType: r.InstrumentType,
			TickSize:       r.TickSize,
		}
	}
	if err := parquet.WriteFile(path, records); err != nil {
		return 0, fmt.Errorf("writing catalog snapshot: %w", err)
	}
	return len(records), nil
}

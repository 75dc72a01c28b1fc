package watchlist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wonny/bandarscan/internal/contracts"
)

// querier is the subset of pgxpool.Pool used here
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresProvider resolves watchlist groups from the watchlist_items table
//
//	watchlist_items(group_id text, symbol text, flag text, sector text,
//	                last_price numeric, position int)
type PostgresProvider struct {
	db querier
}

// NewPostgresProvider creates a provider backed by db (usually *pgxpool.Pool)
func NewPostgresProvider(db querier) *PostgresProvider {
	return &PostgresProvider{db: db}
}

// FetchGroup returns the members of a watchlist group in display order.
// An unknown group yields an empty list.
func (p *PostgresProvider) FetchGroup(ctx context.Context, groupID string) ([]contracts.SymbolRequest, error) {
	query := `
		SELECT symbol,
		       COALESCE(flag, ''),
		       COALESCE(sector, ''),
		       COALESCE(last_price, 0)::float8
		FROM watchlist_items
		WHERE group_id = $1
		ORDER BY position, symbol
	`

	rows, err := p.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("query watchlist group %s: %w", groupID, err)
	}
	defer rows.Close()

	out := make([]contracts.SymbolRequest, 0)
	for rows.Next() {
		var (
			symbol, flag, sector string
			lastPrice            float64
		)
		if err := rows.Scan(&symbol, &flag, &sector, &lastPrice); err != nil {
			return nil, fmt.Errorf("scan watchlist item: %w", err)
		}
		out = append(out, contracts.SymbolRequest{
			Symbol:         symbol,
			Flag:           contracts.ParseFlag(flag),
			Sector:         sector,
			LastKnownPrice: lastPrice,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return out, nil
}

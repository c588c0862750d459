package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

// Store reads counterpart pools maintained in the counterpart_pool table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectPools = `
	SELECT region_code, kind, value
	FROM counterpart_pool
	WHERE enabled
	ORDER BY region_code, kind, position
`

// Pools returns every enabled pool entry grouped by region code.
func (s *Store) Pools(ctx context.Context) (map[string]region.Pool, error) {
	rows, err := s.db.QueryContext(ctx, selectPools)
	if err != nil {
		return nil, fmt.Errorf("querying pools: %w", err)
	}
	defer rows.Close()

	pools := make(map[string]region.Pool)

	for rows.Next() {
		var code, kind, value string
		if err := rows.Scan(&code, &kind, &value); err != nil {
			return nil, fmt.Errorf("scanning pool row: %w", err)
		}

		p := pools[code]

		switch kind {
		case "supplier":
			p.Suppliers = append(p.Suppliers, value)
		case "address":
			p.Addresses = append(p.Addresses, value)
		default:
			return nil, fmt.Errorf("pool row for %s has unknown kind %q", code, kind)
		}

		pools[code] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pool rows: %w", err)
	}

	return pools, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/gendocsets"
)

// Compile-time interface verification.
var _ gendocsets.SymbolService = (*SymbolService)(nil)

// SymbolService implements gendocsets.SymbolService using SQLite.
// In the Dash format parents are not persisted and read back as nil.
type SymbolService struct {
	db *DB
}

// NewSymbolService creates a new SymbolService.
func NewSymbolService(db *DB) *SymbolService {
	return &SymbolService{db: db}
}

// CreateSymbol inserts a symbol and sets its ID. A duplicate of an existing
// row with the same type, name, path and parent is ignored and the existing
// ID is returned. Rows differing only in parent are distinct.
func (s *SymbolService) CreateSymbol(ctx context.Context, sym *gendocsets.Symbol) error {
	if err := sym.Validate(); err != nil {
		return err
	}

	var (
		result sql.Result
		err    error
	)
	if s.db.Format == gendocsets.FormatDash {
		result, err = s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO searchIndex (name, type, path)
			VALUES (?, ?, ?)
		`, sym.Name, sym.Type, sym.Path)
	} else {
		var parent any
		if sym.ParentID != nil {
			parent = *sym.ParentID
		}
		result, err = s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO things (type, name, path, parent)
			VALUES (?, ?, ?, ?)
		`, sym.Type, sym.Name, sym.Path, parent)
	}
	if err != nil {
		return fmt.Errorf("failed to insert symbol %q: %w", sym.Name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		sym.ID, err = result.LastInsertId()
		return err
	}

	query := fmt.Sprintf("SELECT id FROM %s WHERE type = ? AND name = ? AND path = ?", s.db.table())
	args := []any{sym.Type, sym.Name, sym.Path}
	if s.db.Format != gendocsets.FormatDash {
		query += " AND coalesce(parent, 0) = ?"
		var parent int64
		if sym.ParentID != nil {
			parent = *sym.ParentID
		}
		args = append(args, parent)
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&sym.ID); err != nil {
		return fmt.Errorf("failed to look up existing symbol %q: %w", sym.Name, err)
	}
	return nil
}

// FindSymbols retrieves symbols matching the filter, ordered by ID.
func (s *SymbolService) FindSymbols(ctx context.Context, filter gendocsets.SymbolFilter) ([]*gendocsets.Symbol, error) {
	var query strings.Builder
	var args []any

	fmt.Fprintf(&query, "SELECT id, type, name, path, %s FROM %s WHERE 1=1", s.parentColumn(), s.db.table())

	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, *filter.Type)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.ParentID != nil {
		fmt.Fprintf(&query, " AND %s = ?", s.parentColumn())
		args = append(args, *filter.ParentID)
	}

	query.WriteString(" ORDER BY id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []*gendocsets.Symbol
	for rows.Next() {
		var sym gendocsets.Symbol
		var parent sql.NullInt64
		if err := rows.Scan(&sym.ID, &sym.Type, &sym.Name, &sym.Path, &parent); err != nil {
			return nil, err
		}
		if parent.Valid {
			sym.ParentID = &parent.Int64
		}
		symbols = append(symbols, &sym)
	}

	return symbols, rows.Err()
}

// CountSymbolsByType returns the number of symbols per raw type.
func (s *SymbolService) CountSymbolsByType(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT type, COUNT(*) FROM %s GROUP BY type", s.db.table()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		counts[typ] = n
	}

	return counts, rows.Err()
}

// Digest returns the hex xxhash of every row in ID order.
func (s *SymbolService) Digest(ctx context.Context) (string, error) {
	query := fmt.Sprintf("SELECT id, type, name, path, %s FROM %s ORDER BY id", s.parentColumn(), s.db.table())
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	h := xxhash.New()
	for rows.Next() {
		var id int64
		var typ, name, path string
		var parent sql.NullInt64
		if err := rows.Scan(&id, &typ, &name, &path, &parent); err != nil {
			return "", err
		}

		parentField := ""
		if parent.Valid {
			parentField = strconv.FormatInt(parent.Int64, 10)
		}
		_, _ = h.WriteString(strings.Join([]string{strconv.FormatInt(id, 10), typ, name, path, parentField}, "\x1f"))
		_, _ = h.WriteString("\x1e")
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

func (s *SymbolService) parentColumn() string {
	if s.db.Format == gendocsets.FormatDash {
		return "NULL"
	}
	return "parent"
}

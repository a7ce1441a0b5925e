package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fwojciec/gendocsets"
)

// Compile-time interface verification.
var _ gendocsets.SearchService = (*SearchService)(nil)

// SearchService implements gendocsets.SearchService over one docset index.
type SearchService struct {
	db     *DB
	docset string
}

// NewSearchService creates a SearchService whose results are labeled with
// the given docset name.
func NewSearchService(db *DB, docset string) *SearchService {
	return &SearchService{db: db, docset: docset}
}

// Search returns up to gendocsets.MaxResultsPerDocset symbols matching
// query. Prefix matches are collected first, then substring matches.
//
// Besides the symbol name, a Zeal index matches the parent name in the
// substring pass and "parent.name" when the query is qualified. A Dash index,
// which stores qualified names, also matches any ".", "::" or "/" separated
// part of a name by prefix.
func (s *SearchService) Search(ctx context.Context, query string) ([]gendocsets.SearchResult, error) {
	if query == "" {
		return nil, nil
	}

	type key struct{ name, typ, path string }
	seen := make(map[key]bool)
	var results []gendocsets.SearchResult

	for _, substring := range []bool{false, true} {
		remaining := gendocsets.MaxResultsPerDocset - len(results)
		if remaining <= 0 {
			break
		}

		// Rows already found by the prefix pass come back again in the
		// substring pass, so over-fetch by what was seen.
		q, args := s.searchQuery(query, substring)
		rows, err := s.db.QueryContext(ctx, q, append(args, remaining+len(results))...)
		if err != nil {
			return nil, fmt.Errorf("failed to search symbols: %w", err)
		}

		err = scanResults(rows, func(name, parent, typ, path string) {
			k := key{name, typ, path}
			if seen[k] || len(results) >= gendocsets.MaxResultsPerDocset {
				return
			}
			seen[k] = true
			results = append(results, s.result(query, name, parent, typ, path))
		})
		if err != nil {
			return nil, err
		}
	}

	gendocsets.SortResults(results)
	return results, nil
}

// Related returns the symbols located on the page of pagePath, in index
// order.
func (s *SearchService) Related(ctx context.Context, pagePath string) ([]gendocsets.SearchResult, error) {
	page := pageOf(pagePath)
	if page == "" {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT t.name, %s, t.type, t.path
		FROM %s t %s
		WHERE t.path = ? OR t.path LIKE ? ESCAPE '\'
		ORDER BY t.id
	`, s.parentNameColumn(), s.db.table(), s.parentJoin())

	rows, err := s.db.QueryContext(ctx, query, page, escapeLike(page)+"#%")
	if err != nil {
		return nil, fmt.Errorf("failed to find related symbols: %w", err)
	}

	var results []gendocsets.SearchResult
	err = scanResults(rows, func(name, parent, typ, path string) {
		results = append(results, s.result("", name, parent, typ, path))
	})
	return results, err
}

func (s *SearchService) result(query, name, parent, typ, path string) gendocsets.SearchResult {
	display, parentName := gendocsets.NormalizeName(name, parent)
	r := gendocsets.SearchResult{
		Docset:     s.docset,
		Name:       display,
		ParentName: parentName,
		Type:       gendocsets.SymbolKind(typ),
		Path:       path,
	}
	if query != "" {
		r.Score = gendocsets.Score(query, name)
		if parentName != "" {
			r.Score = max(r.Score, gendocsets.Score(query, parentName+"."+display))
		}
	}
	return r
}

// searchQuery returns the candidate query of one pass and its arguments,
// without the trailing LIMIT argument.
func (s *SearchService) searchQuery(query string, substring bool) (string, []any) {
	escaped := escapeLike(query)
	pattern := escaped + "%"
	if substring {
		pattern = "%" + pattern
	}

	conds := []string{`t.name LIKE ? ESCAPE '\'`}
	args := []any{pattern}
	if s.db.Format == gendocsets.FormatDash {
		for _, sep := range []string{".", "::", "/"} {
			conds = append(conds, `t.name LIKE ? ESCAPE '\'`)
			args = append(args, "%"+sep+escaped+"%")
		}
	} else {
		if substring {
			conds = append(conds, `p.name LIKE ? ESCAPE '\'`)
			args = append(args, escaped+"%")
		}
		if qualified := qualifyQuery(query); qualified != "" {
			conds = append(conds, `(p.name || '.' || t.name) LIKE ? ESCAPE '\'`)
			if substring {
				args = append(args, "%"+escapeLike(qualified)+"%")
			} else {
				args = append(args, escapeLike(qualified)+"%")
			}
		}
	}

	return fmt.Sprintf(`
		SELECT t.name, %s, t.type, t.path
		FROM %s t %s
		WHERE %s
		ORDER BY length(t.name), lower(t.name), t.path
		LIMIT ?
	`, s.parentNameColumn(), s.db.table(), s.parentJoin(), strings.Join(conds, " OR ")), args
}

// qualifyQuery rewrites a query naming a parent ("str.split",
// "QString::size", "archive/tar") with "." separators, or returns "" when
// it names no parent.
func qualifyQuery(query string) string {
	q := strings.NewReplacer("::", ".", "/", ".").Replace(query)
	if i := strings.IndexByte(q, '.'); i <= 0 || i == len(q)-1 {
		return ""
	}
	return q
}

func (s *SearchService) parentNameColumn() string {
	if s.db.Format == gendocsets.FormatDash {
		return "NULL"
	}
	return "p.name"
}

func (s *SearchService) parentJoin() string {
	if s.db.Format == gendocsets.FormatDash {
		return ""
	}
	return "LEFT JOIN things p ON p.id = t.parent"
}

// scanResults iterates rows of (name, parent name, type, path) and closes them.
func scanResults(rows *sql.Rows, fn func(name, parent, typ, path string)) error {
	defer rows.Close()
	for rows.Next() {
		var name, typ, path string
		var parent sql.NullString
		if err := rows.Scan(&name, &parent, &typ, &path); err != nil {
			return err
		}
		fn(name, parent.String, typ, path)
	}
	return rows.Err()
}

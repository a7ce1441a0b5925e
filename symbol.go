package gendocsets

import "context"

// Raw symbol types written by the Sphinx and Qt crawlers.
const (
	TypeModule   = "module"
	TypeClass    = "class"
	TypeMember   = "member"
	TypeFunction = "function"
)

// Raw symbol types written by the JSDuck crawler. These are Dash type
// abbreviations and are stored verbatim.
const (
	TypeDashClass     = "cl"
	TypeDashMethod    = "clm"
	TypeDashAttribute = "Attribute"
	TypeDashEvent     = "event"
	TypeDashFunction  = "func"
	TypeDashVariable  = "var"
	TypeUnknown       = "unknown"
)

// Symbol is a single row of a docset search index.
type Symbol struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`

	// Path is relative to Contents/Resources/Documents and may carry a
	// #fragment.
	Path string `json:"path"`

	// ParentID references the enclosing symbol, usually a class.
	// Nil for top-level symbols.
	ParentID *int64 `json:"parentId,omitempty"`
}

// Validate returns an error if the symbol contains invalid fields.
func (s *Symbol) Validate() error {
	if s.Type == "" {
		return Errorf(EINVALID, "symbol type required")
	}
	if s.Name == "" {
		return Errorf(EINVALID, "symbol name required")
	}
	if s.Path == "" {
		return Errorf(EINVALID, "symbol path required")
	}
	return nil
}

// IndexFormat selects the on-disk schema of a docset index.
type IndexFormat string

// Supported index formats.
const (
	// FormatZeal stores symbols in a "things" table with parent references.
	FormatZeal IndexFormat = "zeal"
	// FormatDash stores symbols in a "searchIndex" table without parents.
	FormatDash IndexFormat = "dash"
)

// SymbolFilter represents a filter for FindSymbols.
type SymbolFilter struct {
	Type     *string `json:"type"`
	Name     *string `json:"name"`
	ParentID *int64  `json:"parentId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SymbolService represents a service for managing the symbol index.
type SymbolService interface {
	// CreateSymbol inserts a symbol and sets its ID.
	// Inserting a symbol identical in type, name, path and parent to an
	// existing row is not an error; the existing ID is returned in sym.ID.
	CreateSymbol(ctx context.Context, sym *Symbol) error

	// FindSymbols retrieves symbols matching the filter, ordered by ID.
	FindSymbols(ctx context.Context, filter SymbolFilter) ([]*Symbol, error)

	// CountSymbolsByType returns the number of symbols per raw type.
	CountSymbolsByType(ctx context.Context) (map[string]int, error)

	// Digest returns a stable hash of every row in ID order. Two builds of
	// the same corpus produce the same digest.
	Digest(ctx context.Context) (string, error)
}

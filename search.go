package gendocsets

import (
	"cmp"
	"context"
	"regexp"
	"slices"
	"strings"
)

// MaxResultsPerDocset caps the candidate rows a single docset contributes
// to one search.
const MaxResultsPerDocset = 100

// SearchQuery is a parsed search string of the form "kw1,kw2:query".
type SearchQuery struct {
	Query    string
	Keywords []string
}

// ParseSearchQuery splits an optional docset keyword prefix from the query.
// A "::" sequence is part of the query (C++ scopes), not a separator.
func ParseSearchQuery(s string) SearchQuery {
	sep := strings.IndexByte(s, ':')
	next := sep + 1
	if sep > 0 && (next >= len(s) || s[next] != ':') {
		var keywords []string
		for _, kw := range strings.Split(strings.TrimSpace(s[:sep]), ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		return SearchQuery{Query: strings.TrimSpace(s[next:]), Keywords: keywords}
	}
	return SearchQuery{Query: strings.TrimSpace(s)}
}

// String formats the query back into its textual form.
func (q SearchQuery) String() string {
	if len(q.Keywords) == 0 {
		return q.Query
	}
	return strings.Join(q.Keywords, ",") + ":" + q.Query
}

// MatchesDocset reports whether a docset with the given keywords is selected
// by the query's keyword prefix. A query without keywords selects every
// docset. Keywords match case-insensitively by prefix.
func (q SearchQuery) MatchesDocset(docsetKeywords []string) bool {
	if len(q.Keywords) == 0 {
		return true
	}
	for _, want := range q.Keywords {
		for _, have := range docsetKeywords {
			if strings.HasPrefix(strings.ToLower(have), strings.ToLower(want)) {
				return true
			}
		}
	}
	return false
}

// SearchResult is a symbol matched by a search.
type SearchResult struct {
	Docset     string `json:"docset"`
	Name       string `json:"name"`
	ParentName string `json:"parentName,omitempty"`
	Type       string `json:"type"`
	Path       string `json:"path"`
	Score      int    `json:"score"`
}

// SortResults orders results by descending score, then by name, docset and
// path.
func SortResults(results []SearchResult) {
	slices.SortStableFunc(results, func(a, b SearchResult) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Docset, b.Docset); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
}

// SearchService searches the symbol index of one docset.
type SearchService interface {
	// Search returns up to MaxResultsPerDocset symbols whose names contain
	// the query, scored and sorted by relevance.
	Search(ctx context.Context, query string) ([]SearchResult, error)

	// Related returns the symbols located on the same page as pagePath,
	// ignoring any fragment.
	Related(ctx context.Context, pagePath string) ([]SearchResult, error)
}

var methodArgsRe = regexp.MustCompile(`^([^(]+)(?:\(.*\))?$`)

// NormalizeName strips a trailing argument list from a symbol name and,
// when the index recorded no parent, splits a qualified name into parent
// and leaf on ".", "::" and "/".
func NormalizeName(name, parent string) (string, string) {
	if m := methodArgsRe.FindStringSubmatch(name); m != nil {
		name = m[1]
	}
	if parent != "" {
		return name, parent
	}
	for _, sep := range []string{".", "::", "/"} {
		if i := strings.Index(name, sep); i > 0 {
			parts := strings.Split(name, sep)
			name = parts[len(parts)-1]
			parent = parts[len(parts)-2]
		}
	}
	return name, parent
}

// symbolKinds maps raw index types to display kinds.
var symbolKinds = map[string]string{
	"Package Attributes":   "Attribute",
	"Private Attributes":   "Attribute",
	"Protected Attributes": "Attribute",
	"Public Attributes":    "Attribute",
	"XML Attributes":       "Attribute",

	"binding": "Binding",

	"cat":    "Category",
	"Groups": "Category",
	"Pages":  "Category",

	"cl":             "Class",
	"class":          "Class",
	"specialization": "Class",
	"tmplt":          "Class",

	"data":          "Constant",
	"econst":        "Constant",
	"enumdata":      "Constant",
	"enumelt":       "Constant",
	"clconst":       "Constant",
	"structdata":    "Constant",
	"Notifications": "Constant",

	"structctr":           "Constructor",
	"Public Constructors": "Constructor",

	"enum":         "Enumeration",
	"Enum":         "Enumeration",
	"Enumerations": "Enumeration",

	"event":            "Event",
	"Public Events":    "Event",
	"Inherited Events": "Event",
	"Private Events":   "Event",

	"Data Fields": "Field",

	"func":                           "Function",
	"ffunc":                          "Function",
	"function":                       "Function",
	"signal":                         "Function",
	"slot":                           "Function",
	"Members":                        "Function",
	"Public Member Functions":        "Function",
	"Protected Member Functions":     "Function",
	"Private Member Functions":       "Function",
	"Static Public Member Functions": "Function",
	"Public Slots":                   "Function",
	"Signals":                        "Function",

	"doc": "Guide",

	"ns": "Namespace",

	"module": "Module",

	"macro": "Macro",

	"clm":               "Method",
	"member":            "Method",
	"instm":             "Method",
	"intfm":             "Method",
	"structm":           "Method",
	"Class Methods":     "Method",
	"Inherited Methods": "Method",
	"Instance Methods":  "Method",
	"Public Methods":    "Method",

	"opfunc": "Operator",

	"instp":                "Property",
	"intfp":                "Property",
	"structp":              "Property",
	"Inherited Properties": "Property",
	"Public Properties":    "Property",

	"intf": "Protocol",

	"struct":          "Structure",
	"Data Structures": "Structure",

	"tag":          "Type",
	"tdef":         "Type",
	"Typedefs":     "Type",
	"Public Types": "Type",

	"var": "Variable",
}

// SymbolKind maps a raw index type to its display kind.
// Unrecognized types are returned unchanged.
func SymbolKind(rawType string) string {
	if kind, ok := symbolKinds[rawType]; ok {
		return kind
	}
	return rawType
}

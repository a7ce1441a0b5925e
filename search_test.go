package gendocsets_test

import (
	"testing"

	"github.com/fwojciec/gendocsets"
	"github.com/stretchr/testify/assert"
)

func TestParseSearchQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		query    string
		keywords []string
	}{
		{name: "plain query", input: "  QWidget ", query: "QWidget"},
		{name: "single keyword", input: "python:os.path", query: "os.path", keywords: []string{"python"}},
		{name: "multiple keywords", input: "qt, python : join", query: "join", keywords: []string{"qt", "python"}},
		{name: "scope operator is not a prefix", input: "std::vector", query: "std::vector"},
		{name: "leading colon is part of the query", input: ":foo", query: ":foo"},
		{name: "keyword without query", input: "extjs:", query: "", keywords: []string{"extjs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := gendocsets.ParseSearchQuery(tt.input)
			assert.Equal(t, tt.query, q.Query)
			assert.Equal(t, tt.keywords, q.Keywords)
		})
	}
}

func TestSearchQuery_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "qt,python:join", gendocsets.SearchQuery{Query: "join", Keywords: []string{"qt", "python"}}.String())
	assert.Equal(t, "join", gendocsets.SearchQuery{Query: "join"}.String())
}

func TestSearchQuery_MatchesDocset(t *testing.T) {
	t.Parallel()

	t.Run("no keywords selects everything", func(t *testing.T) {
		t.Parallel()
		assert.True(t, gendocsets.ParseSearchQuery("foo").MatchesDocset(nil))
	})

	t.Run("keyword matches by case insensitive prefix", func(t *testing.T) {
		t.Parallel()
		q := gendocsets.ParseSearchQuery("ext:panel")
		assert.True(t, q.MatchesDocset([]string{"ExtJS 4.1"}))
		assert.False(t, q.MatchesDocset([]string{"Qt 5"}))
	})
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		inName     string
		inParent   string
		wantName   string
		wantParent string
	}{
		{name: "strips argument list", inName: "append(x)", inParent: "list", wantName: "append", wantParent: "list"},
		{name: "splits dotted name", inName: "Ext.Component.show", wantName: "show", wantParent: "Component"},
		{name: "splits scoped name", inName: "std::vector", wantName: "vector", wantParent: "std"},
		{name: "splits path name", inName: "archive/tar", wantName: "tar", wantParent: "archive"},
		{name: "keeps stored parent", inName: "os.path", inParent: "os", wantName: "os.path", wantParent: "os"},
		{name: "leading dot is not a scope", inName: ".hidden", wantName: ".hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, parent := gendocsets.NormalizeName(tt.inName, tt.inParent)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantParent, parent)
		})
	}
}

func TestSymbolKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Class", gendocsets.SymbolKind(gendocsets.TypeDashClass))
	assert.Equal(t, "Method", gendocsets.SymbolKind(gendocsets.TypeDashMethod))
	assert.Equal(t, "Method", gendocsets.SymbolKind(gendocsets.TypeMember))
	assert.Equal(t, "Module", gendocsets.SymbolKind(gendocsets.TypeModule))
	assert.Equal(t, "Attribute", gendocsets.SymbolKind(gendocsets.TypeDashAttribute))
	assert.Equal(t, "unknown", gendocsets.SymbolKind(gendocsets.TypeUnknown))
}

func TestSortResults(t *testing.T) {
	t.Parallel()

	results := []gendocsets.SearchResult{
		{Name: "showAt", Score: 196, Path: "b.html"},
		{Name: "show", Score: 198, Docset: "Sencha", Path: "a.html"},
		{Name: "show", Score: 198, Docset: "ExtJS", Path: "a.html"},
		{Name: "hide", Score: 10, Path: "c.html"},
	}
	gendocsets.SortResults(results)

	assert.Equal(t, "ExtJS", results[0].Docset)
	assert.Equal(t, "Sencha", results[1].Docset)
	assert.Equal(t, "showAt", results[2].Name)
	assert.Equal(t, "hide", results[3].Name)
}

package crawl_test

import (
	"testing"

	"github.com/fwojciec/gendocsets/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestFormatCounts(t *testing.T) {
	t.Parallel()

	t.Run("sorts types and aligns counts", func(t *testing.T) {
		t.Parallel()
		got := crawl.FormatCounts(map[string]int{"module": 2, "class": 10, "member": 345})
		assert.Equal(t, "  class:  10\n  member: 345\n  module: 2\n", got)
	})

	t.Run("returns empty string without counts", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.FormatCounts(nil))
	})
}

package gendocsets_test

import (
	"testing"

	"github.com/fwojciec/gendocsets"
	"github.com/stretchr/testify/assert"
)

func TestFragmentIndex(t *testing.T) {
	t.Parallel()

	t.Run("resolves class qualified ids", func(t *testing.T) {
		t.Parallel()

		x := gendocsets.NewFragmentIndex()
		x.Add("Ext.Component", "Ext.Component.html", "method-show")

		target, ok := x.Lookup("Ext.Component-method-show")
		assert.True(t, ok)
		assert.Equal(t, "Ext.Component.html#method-show", target.Href())
		assert.Equal(t, 1, x.Len())
	})

	t.Run("misses unknown keys", func(t *testing.T) {
		t.Parallel()

		x := gendocsets.NewFragmentIndex()
		x.Add("Ext.Component", "Ext.Component.html", "method-show")

		_, ok := x.Lookup("Ext.Component-method-hide")
		assert.False(t, ok)
		_, ok = x.Lookup("method-show")
		assert.False(t, ok)
	})

	t.Run("later registration wins", func(t *testing.T) {
		t.Parallel()

		x := gendocsets.NewFragmentIndex()
		x.Add("Ext.A", "Ext.A.html", "cfg-x")
		x.Add("Ext.A", "Ext.A-copy.html", "cfg-x")

		target, ok := x.Lookup("Ext.A-cfg-x")
		assert.True(t, ok)
		assert.Equal(t, "Ext.A-copy.html", target.Page)
		assert.Equal(t, 1, x.Len())
	})
}

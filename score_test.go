package gendocsets_test

import (
	"testing"

	"github.com/fwojciec/gendocsets"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	t.Parallel()

	t.Run("identical name scores highest", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 200, gendocsets.Score("show", "show"))
	})

	t.Run("exact match after a dot", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 198, gendocsets.Score("show", "Ext.Component.show"))
	})

	t.Run("shorter remainder ranks higher", func(t *testing.T) {
		t.Parallel()
		assert.Greater(t,
			gendocsets.Score("show", "Ext.Component.show"),
			gendocsets.Score("show", "Ext.Component.showAt"))
	})

	t.Run("trailing components cost five points per dot", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 191, gendocsets.Score("EXT", "ext.Foo"))
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, gendocsets.Score("component", "Component"), gendocsets.Score("COMPONENT", "component"))
	})

	t.Run("scope separators are equivalent", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 200, gendocsets.Score("std::set", "std::set"))
		assert.Equal(t, 200, gendocsets.Score("os.path", "os/path"))
	})

	t.Run("fuzzy subsequence scores below exact matches", func(t *testing.T) {
		t.Parallel()
		score := gendocsets.Score("cmp", "Component")
		assert.Equal(t, 96, score)
		assert.Less(t, score, 100)
	})

	t.Run("too many gaps do not match", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, gendocsets.Score("cmt", "component"))
	})

	t.Run("no match scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, gendocsets.Score("xyz", "Ext.Component"))
	})

	t.Run("empty query scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, gendocsets.Score("", "Ext.Component"))
	})
}

package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/gendocsets"
	"github.com/fwojciec/gendocsets/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>QString Class | Qt Core 5.0</title>
<meta property="og:title" content="QString Class">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>QString Class</h1>
<p>The QString class provides a Unicode character string.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/">Home</a><a href="/qtcore">Qt Core</a></nav>
<article>
<h1>QString Class</h1>
<p>This is important reference documentation that should be extracted.</p>
<pre><code>QString str = "Hello";</code></pre>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2013</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "important reference documentation")
		assert.Contains(t, result.ContentHTML, "QString str")
	})

	t.Run("removes navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/modules">Modules</a></li>
<li><a href="/classes">Classes</a></li>
</ul>
</nav>
<main>
<h1>Main Content</h1>
<p>This paragraph contains the actual content we want.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "actual content we want")
		assert.NotContains(t, result.ContentHTML, "main-nav")
	})

	t.Run("keeps cross-references and tables of sphinx pages", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(sphinxPage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "principal built-in types")
		assert.Contains(t, result.ContentHTML, `href="#str"`)
		assert.Contains(t, result.ContentHTML, "<table")
		assert.NotContains(t, result.ContentHTML, "¶")
		assert.NotContains(t, result.ContentHTML, "Quick search")
		assert.NotContains(t, result.ContentHTML, "Python Software Foundation")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, gendocsets.EINVALID, gendocsets.ErrorCode(err))
	})
}

const sphinxPage = `<!DOCTYPE html>
<html>
<head><title>Built-in Types &mdash; Python 3.3 documentation</title></head>
<body>
<div class="related"><h3>Navigation</h3><ul><li><a href="genindex.html">index</a></li><li><a href="py-modindex.html">modules</a></li></ul></div>
<div class="document"><div class="body">
<h1 id="built-in-types">Built-in Types<a class="headerlink" href="#built-in-types" title="Permalink to this headline">¶</a></h1>
<p>The principal built-in types are numerics, sequences, mappings, classes, instances and exceptions. Textual data in Python is handled with <a class="reference internal" href="#str">str</a> objects, or strings, and every operation on them returns a new object.</p>
<p>Some collection classes are mutable. The methods that add, subtract, or rearrange their members in place, and do not return a specific item, never return the collection instance itself but None.</p>
<table class="docutils"><tr><th>Operation</th><th>Result</th></tr><tr><td>x or y</td><td>if x is false, then y, else x</td></tr><tr><td>x and y</td><td>if x is false, then x, else y</td></tr></table>
</div></div>
<div class="sphinxsidebar"><h3>Quick search</h3><form><input type="text" name="q"/></form></div>
<div class="footer">&copy; Copyright 1990-2013, Python Software Foundation.</div>
</body>
</html>`

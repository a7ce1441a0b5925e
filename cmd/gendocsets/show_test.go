package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/gendocsets"
	main "github.com/fwojciec/gendocsets/cmd/gendocsets"
	"github.com/fwojciec/gendocsets/etree"
	"github.com/fwojciec/gendocsets/htmltomarkdown"
	"github.com/fwojciec/gendocsets/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildJSDuckDocset builds a docset whose class symbol points at a whole
// page, without a fragment.
func buildJSDuckDocset(t *testing.T) string {
	t.Helper()
	html := `<div class='doc-contents'><p>The root of all classes.</p></div>
<div class='members'><div class='members-section'><h3>Methods</h3>
<div class='member' id='method-destroy'><div class='title'><a>destroy</a><span class='defined-in'>Ext.Base</span></div></div>
</div></div>`
	payload, err := json.Marshal(map[string]string{"html": html})
	require.NoError(t, err)
	corpus := writeCorpus(t, map[string]string{
		"output/Ext.Base.js": "Ext.data.JsonP.Ext_Base(" + string(payload) + ");",
	})
	out := t.TempDir()
	_, _, err = run(t, "jsduck", corpus, "--out", out)
	require.NoError(t, err)
	return filepath.Join(out, "ExtJS.docset")
}

func showDeps(extractor gendocsets.Extractor) (*main.Dependencies, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     &bytes.Buffer{},
		Logger:     slog.New(slog.DiscardHandler),
		Metadata:   etree.NewCodec(),
		Converter:  htmltomarkdown.NewConverter(),
		Extractors: map[string]gendocsets.Extractor{"test": extractor},
	}, stdout
}

func TestShowCmd_WholePage(t *testing.T) {
	t.Parallel()

	bundle := buildJSDuckDocset(t)

	t.Run("prints the extracted main content", func(t *testing.T) {
		t.Parallel()

		var got string
		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*gendocsets.ExtractResult, error) {
				got = html
				return &gendocsets.ExtractResult{Title: "Ext.Base", ContentHTML: "<p>Extracted summary.</p>"}, nil
			},
		}
		deps, stdout := showDeps(extractor)

		cmd := &main.ShowCmd{Docset: bundle, Name: "Ext.Base", Extractor: "test"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, got, "The root of all classes.")
		assert.Contains(t, stdout.String(), "# Ext.Base (Class)")
		assert.Contains(t, stdout.String(), "Extracted summary.")
		assert.Contains(t, stdout.String(), "Source: html/Ext.Base.html")
	})

	t.Run("falls back to the page body when nothing is extracted", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*gendocsets.ExtractResult, error) {
				return &gendocsets.ExtractResult{}, nil
			},
		}
		deps, stdout := showDeps(extractor)

		cmd := &main.ShowCmd{Docset: bundle, Name: "Ext.Base", Extractor: "test"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "The root of all classes.")
	})

	t.Run("falls back to the page body when extraction is rejected", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*gendocsets.ExtractResult, error) {
				return nil, gendocsets.Errorf(gendocsets.EINVALID, "no content")
			},
		}
		deps, stdout := showDeps(extractor)

		cmd := &main.ShowCmd{Docset: bundle, Name: "Ext.Base", Extractor: "test"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "The root of all classes.")
	})

	t.Run("returns other extractor errors", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*gendocsets.ExtractResult, error) {
				return nil, gendocsets.Errorf(gendocsets.EINTERNAL, "extractor crashed")
			},
		}
		deps, _ := showDeps(extractor)

		cmd := &main.ShowCmd{Docset: bundle, Name: "Ext.Base", Extractor: "test"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, gendocsets.EINTERNAL, gendocsets.ErrorCode(err))
	})

	t.Run("returns converter errors", func(t *testing.T) {
		t.Parallel()

		deps, stdout := showDeps(&mock.Extractor{
			ExtractFn: func(html string) (*gendocsets.ExtractResult, error) {
				return &gendocsets.ExtractResult{ContentHTML: "<p>Extracted summary.</p>"}, nil
			},
		})
		var converted string
		deps.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				converted = html
				return "", gendocsets.Errorf(gendocsets.EINVALID, "unsupported markup")
			},
		}

		cmd := &main.ShowCmd{Docset: bundle, Name: "Ext.Base", Extractor: "test"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, "unsupported markup", gendocsets.ErrorMessage(err))
		assert.Equal(t, "<p>Extracted summary.</p>", converted)
		assert.Empty(t, stdout.String())
	})

	t.Run("uses the fragment without extracting", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*gendocsets.ExtractResult, error) {
				return nil, errors.New("unexpected call")
			},
		}
		deps, stdout := showDeps(extractor)

		cmd := &main.ShowCmd{Docset: bundle, Name: "destroy", Extractor: "test"}
		require.NoError(t, cmd.Run(deps))
		assert.True(t, strings.HasPrefix(stdout.String(), "# Ext.Base.destroy (Method)"), stdout.String())
	})
}

func TestMain_ShowWithReadability(t *testing.T) {
	t.Parallel()

	bundle := buildJSDuckDocset(t)

	stdout, _, err := run(t, "show", bundle, "Ext.Base", "--extractor", "readability")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Ext.Base (Class)")
	assert.Contains(t, stdout, "Source: html/Ext.Base.html")
}

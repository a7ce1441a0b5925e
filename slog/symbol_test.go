package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/gendocsets"
	"github.com/fwojciec/gendocsets/mock"
	gdslog "github.com/fwojciec/gendocsets/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSymbolService_CreateSymbol(t *testing.T) {
	t.Parallel()

	t.Run("logs insert at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SymbolService{
			CreateSymbolFn: func(ctx context.Context, sym *gendocsets.Symbol) error {
				sym.ID = 7
				return nil
			},
		}

		s := gdslog.NewLoggingSymbolService(inner, debugLogger(&buf))
		sym := &gendocsets.Symbol{Type: "module", Name: "os", Path: "library/os.html"}
		require.NoError(t, s.CreateSymbol(context.Background(), sym))

		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, `msg="create symbol"`)
		assert.Contains(t, output, "id=7")
		assert.Contains(t, output, "name=os")
	})

	t.Run("is silent at info level on success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SymbolService{
			CreateSymbolFn: func(ctx context.Context, sym *gendocsets.Symbol) error { return nil },
		}

		s := gdslog.NewLoggingSymbolService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		require.NoError(t, s.CreateSymbol(context.Background(), &gendocsets.Symbol{Type: "class", Name: "dict", Path: "a.html"}))
		assert.Empty(t, buf.String())
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SymbolService{
			CreateSymbolFn: func(ctx context.Context, sym *gendocsets.Symbol) error {
				return errors.New("constraint failed")
			},
		}

		s := gdslog.NewLoggingSymbolService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		err := s.CreateSymbol(context.Background(), &gendocsets.Symbol{Type: "class", Name: "dict", Path: "a.html"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, `err="constraint failed"`)
	})
}

func TestLoggingSymbolService_FindSymbols(t *testing.T) {
	t.Parallel()

	t.Run("logs count with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SymbolService{
			FindSymbolsFn: func(ctx context.Context, filter gendocsets.SymbolFilter) ([]*gendocsets.Symbol, error) {
				return []*gendocsets.Symbol{{ID: 1}, {ID: 2}}, nil
			},
		}

		s := gdslog.NewLoggingSymbolService(inner, debugLogger(&buf))
		symbols, err := s.FindSymbols(context.Background(), gendocsets.SymbolFilter{})

		require.NoError(t, err)
		assert.Len(t, symbols, 2)
		assert.Contains(t, buf.String(), "count=2")
		assert.Contains(t, buf.String(), "duration=")
	})
}

func TestLoggingSymbolService_Digest(t *testing.T) {
	t.Parallel()

	t.Run("logs the digest", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SymbolService{
			DigestFn: func(ctx context.Context) (string, error) { return "00ff00ff00ff00ff", nil },
			CountSymbolsByTypeFn: func(ctx context.Context) (map[string]int, error) {
				return map[string]int{"class": 1}, nil
			},
		}

		s := gdslog.NewLoggingSymbolService(inner, debugLogger(&buf))
		digest, err := s.Digest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "00ff00ff00ff00ff", digest)
		assert.Contains(t, buf.String(), "digest=00ff00ff00ff00ff")

		counts, err := s.CountSymbolsByType(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"class": 1}, counts)
	})
}

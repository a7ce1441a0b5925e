package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/gendocsets"
	"github.com/fwojciec/gendocsets/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolService_CreateSymbol(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreateSymbolFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *gendocsets.Symbol
		s := &mock.SymbolService{
			CreateSymbolFn: func(_ context.Context, sym *gendocsets.Symbol) error {
				calledWith = sym
				return nil
			},
		}

		sym := &gendocsets.Symbol{Type: "module", Name: "os", Path: "library/os.html"}
		require.NoError(t, s.CreateSymbol(context.Background(), sym))
		assert.Equal(t, sym, calledWith)
	})
}

func TestSymbolRecorder(t *testing.T) {
	t.Parallel()

	t.Run("assigns sequential IDs", func(t *testing.T) {
		t.Parallel()

		var got []*gendocsets.Symbol
		s := mock.SymbolRecorder(&got)
		ctx := context.Background()

		require.NoError(t, s.CreateSymbol(ctx, &gendocsets.Symbol{Type: "class", Name: "dict", Path: "a.html"}))
		require.NoError(t, s.CreateSymbol(ctx, &gendocsets.Symbol{Type: "member", Name: "keys", Path: "a.html#k"}))

		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
	})

	t.Run("validates symbols", func(t *testing.T) {
		t.Parallel()

		var got []*gendocsets.Symbol
		err := mock.SymbolRecorder(&got).CreateSymbol(context.Background(), &gendocsets.Symbol{})
		require.Error(t, err)
		assert.Equal(t, gendocsets.EINVALID, gendocsets.ErrorCode(err))
		assert.Empty(t, got)
	})
}

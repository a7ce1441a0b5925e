package mock

import (
	"context"

	"github.com/fwojciec/gendocsets"
)

var _ gendocsets.SymbolService = (*SymbolService)(nil)

// SymbolService is a mock implementation of gendocsets.SymbolService.
type SymbolService struct {
	CreateSymbolFn       func(ctx context.Context, sym *gendocsets.Symbol) error
	FindSymbolsFn        func(ctx context.Context, filter gendocsets.SymbolFilter) ([]*gendocsets.Symbol, error)
	CountSymbolsByTypeFn func(ctx context.Context) (map[string]int, error)
	DigestFn             func(ctx context.Context) (string, error)
}

func (s *SymbolService) CreateSymbol(ctx context.Context, sym *gendocsets.Symbol) error {
	return s.CreateSymbolFn(ctx, sym)
}

func (s *SymbolService) FindSymbols(ctx context.Context, filter gendocsets.SymbolFilter) ([]*gendocsets.Symbol, error) {
	return s.FindSymbolsFn(ctx, filter)
}

func (s *SymbolService) CountSymbolsByType(ctx context.Context) (map[string]int, error) {
	return s.CountSymbolsByTypeFn(ctx)
}

func (s *SymbolService) Digest(ctx context.Context) (string, error) {
	return s.DigestFn(ctx)
}

// SymbolRecorder returns a SymbolService whose CreateSymbol assigns
// sequential IDs and appends each symbol to *got.
func SymbolRecorder(got *[]*gendocsets.Symbol) *SymbolService {
	return &SymbolService{
		CreateSymbolFn: func(_ context.Context, sym *gendocsets.Symbol) error {
			if err := sym.Validate(); err != nil {
				return err
			}
			sym.ID = int64(len(*got) + 1)
			*got = append(*got, sym)
			return nil
		},
	}
}

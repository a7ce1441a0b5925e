package mock

import "github.com/fwojciec/gendocsets"

var (
	_ gendocsets.MetadataCodec = (*MetadataCodec)(nil)
	_ gendocsets.BundleDecoder = (*BundleDecoder)(nil)
	_ gendocsets.Converter     = (*Converter)(nil)
	_ gendocsets.Extractor     = (*Extractor)(nil)
	_ gendocsets.KeyFilter     = (*KeyFilter)(nil)
)

// MetadataCodec is a mock implementation of gendocsets.MetadataCodec.
type MetadataCodec struct {
	EncodeMetadataFn func(d *gendocsets.Docset) ([]byte, error)
	DecodeMetadataFn func(data []byte) (*gendocsets.Docset, error)
}

func (c *MetadataCodec) EncodeMetadata(d *gendocsets.Docset) ([]byte, error) {
	return c.EncodeMetadataFn(d)
}

func (c *MetadataCodec) DecodeMetadata(data []byte) (*gendocsets.Docset, error) {
	return c.DecodeMetadataFn(data)
}

// BundleDecoder is a mock implementation of gendocsets.BundleDecoder.
type BundleDecoder struct {
	DecodeBundleFn func(data []byte) (*gendocsets.ClassBundle, error)
}

func (d *BundleDecoder) DecodeBundle(data []byte) (*gendocsets.ClassBundle, error) {
	return d.DecodeBundleFn(data)
}

// Converter is a mock implementation of gendocsets.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// Extractor is a mock implementation of gendocsets.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*gendocsets.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*gendocsets.ExtractResult, error) {
	return e.ExtractFn(html)
}

// KeyFilter is a mock implementation of gendocsets.KeyFilter.
type KeyFilter struct {
	AddFn  func(key string)
	TestFn func(key string) bool
}

func (f *KeyFilter) Add(key string) {
	f.AddFn(key)
}

func (f *KeyFilter) Test(key string) bool {
	return f.TestFn(key)
}

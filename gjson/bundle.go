// Package gjson decodes JSDuck JSON-in-JS class bundles using gjson.
package gjson

import (
	"bytes"

	"github.com/fwojciec/gendocsets"
	"github.com/tidwall/gjson"
)

// Ensure Decoder implements gendocsets.BundleDecoder at compile time.
var _ gendocsets.BundleDecoder = (*Decoder)(nil)

// Decoder extracts the JSON payload of a JSONP class bundle.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeBundle reads the object between the first '(' and the last ')' of
// data and returns its html and name fields.
func (d *Decoder) DecodeBundle(data []byte) (*gendocsets.ClassBundle, error) {
	open := bytes.IndexByte(data, '(')
	end := bytes.LastIndexByte(data, ')')
	if open == -1 || end <= open {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "bundle has no JSONP payload")
	}

	payload := data[open+1 : end]
	if !gjson.ValidBytes(payload) {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "bundle payload is not valid JSON")
	}

	fields := gjson.GetManyBytes(payload, "html", "name")
	if fields[0].Type != gjson.String {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "bundle has no html field")
	}

	return &gendocsets.ClassBundle{
		Name: fields[1].String(),
		HTML: fields[0].String(),
	}, nil
}

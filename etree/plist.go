// Package etree encodes and decodes docset Info.plist files using etree.
package etree

import (
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/gendocsets"
)

// Ensure Codec implements gendocsets.MetadataCodec at compile time.
var _ gendocsets.MetadataCodec = (*Codec)(nil)

// Info.plist keys understood by Dash and Zeal.
const (
	keyBundleIdentifier  = "CFBundleIdentifier"
	keyBundleName        = "CFBundleName"
	keyBundleVersion     = "CFBundleVersion"
	keyPlatformFamily    = "DocSetPlatformFamily"
	keyIsDashDocset      = "isDashDocset"
	keyIndexFilePath     = "dashIndexFilePath"
	keyJavaScriptEnabled = "isJavaScriptEnabled"
	keyKeyword           = "DashDocSetKeyword"
	keyPluginKeyword     = "DashDocSetPluginKeyword"
	keyFamily            = "DashDocSetFamily"
)

const plistDoctype = `DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`

// Codec reads and writes the property list subset docsets use: a single
// dict of string and boolean values.
type Codec struct{}

// NewCodec creates a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// EncodeMetadata renders d as an Info.plist document.
func (c *Codec) EncodeMetadata(d *gendocsets.Docset) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(plistDoctype)
	plist := doc.CreateElement("plist")
	plist.CreateAttr("version", "1.0")
	dict := plist.CreateElement("dict")

	putString(dict, keyBundleIdentifier, d.Identifier)
	putString(dict, keyBundleName, d.Name)
	putString(dict, keyPlatformFamily, d.PlatformFamily)
	putBool(dict, keyIsDashDocset, true)
	putString(dict, keyBundleVersion, d.Version)
	putString(dict, keyIndexFilePath, d.IndexFilePath)
	if d.JavaScriptEnabled {
		putBool(dict, keyJavaScriptEnabled, true)
	}
	if len(d.Keywords) > 0 {
		putString(dict, keyKeyword, d.Keywords[0])
	}
	if len(d.Keywords) > 1 {
		putString(dict, keyPluginKeyword, d.Keywords[1])
	}

	doc.IndentTabs()
	return doc.WriteToBytes()
}

// DecodeMetadata parses an Info.plist document. Unknown keys and value
// types are ignored.
func (c *Codec) DecodeMetadata(data []byte) (*gendocsets.Docset, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "failed to parse Info.plist: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "plist" {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "Info.plist has no plist element")
	}
	dict := root.SelectElement("dict")
	if dict == nil {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "Info.plist has no dict element")
	}

	strs := make(map[string]string)
	bools := make(map[string]bool)
	children := dict.ChildElements()
	for i := 0; i+1 < len(children); i++ {
		key := children[i]
		if key.Tag != "key" {
			continue
		}
		value := children[i+1]
		name := strings.TrimSpace(key.Text())
		switch value.Tag {
		case "string":
			strs[name] = value.Text()
		case "true":
			bools[name] = true
		case "false":
			bools[name] = false
		default:
			continue
		}
		i++
	}

	d := &gendocsets.Docset{
		Name:              strs[keyBundleName],
		Identifier:        strs[keyBundleIdentifier],
		PlatformFamily:    strs[keyPlatformFamily],
		Version:           strs[keyBundleVersion],
		IndexFilePath:     strs[keyIndexFilePath],
		JavaScriptEnabled: bools[keyJavaScriptEnabled],
	}
	d.Title = d.Name

	for _, k := range []string{keyKeyword, keyPluginKeyword, keyFamily} {
		kw := strs[k]
		if kw == "" || (k == keyFamily && strings.Contains(kw, "dashtoc")) {
			continue
		}
		if !slices.Contains(d.Keywords, kw) {
			d.Keywords = append(d.Keywords, kw)
		}
	}

	if d.Name == "" {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "Info.plist has no %s", keyBundleName)
	}
	return d, nil
}

func putString(dict *etree.Element, key, value string) {
	if value == "" {
		return
	}
	dict.CreateElement("key").SetText(key)
	dict.CreateElement("string").SetText(value)
}

func putBool(dict *etree.Element, key string, value bool) {
	dict.CreateElement("key").SetText(key)
	dict.CreateElement(fmt.Sprint(value))
}

// Package gendocsets converts pre-rendered API reference documentation
// (JSDuck class bundles, Sphinx HTML, Qt HTML) into docsets: a normalized
// HTML tree plus a flat SQLite symbol index readable by Dash and Zeal.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, etree/).
package gendocsets

package hook

import (
	"table2excel/internal/table"
	"table2excel/internal/xlsx"
)

// Context is the state handed to every handler of one export. It is
// merged, never replaced, between invocations: a field set for one hook
// stays visible to later hooks until a later delta sets it again.
//
// Handlers may mutate anything reachable from it (workbook, worksheet,
// cell, Values); that is what plugins are for.
type Context struct {
	Workbook  *xlsx.Workbook
	Tables    []*table.Table
	Worksheet *xlsx.Worksheet
	Table     *table.Table
	Cell      *xlsx.Cell
	Source    *table.Cell

	// Values carries plugin-owned keys across hooks.
	Values map[string]any
}

// Get returns a plugin-owned value.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.Values[key]
	return v, ok
}

// Set stores a plugin-owned value for the rest of the export.
func (c *Context) Set(key string, v any) {
	if c.Values == nil {
		c.Values = map[string]any{}
	}
	c.Values[key] = v
}

// merge copies every field delta sets onto c.
func (c *Context) merge(delta Context) {
	if delta.Workbook != nil {
		c.Workbook = delta.Workbook
	}
	if delta.Tables != nil {
		c.Tables = delta.Tables
	}
	if delta.Worksheet != nil {
		c.Worksheet = delta.Worksheet
	}
	if delta.Table != nil {
		c.Table = delta.Table
	}
	if delta.Cell != nil {
		c.Cell = delta.Cell
	}
	if delta.Source != nil {
		c.Source = delta.Source
	}
	for k, v := range delta.Values {
		c.Set(k, v)
	}
}

// Package hook dispatches the four conversion lifecycle points to plugins.
//
// A plugin is any value implementing zero or more of WorkbookCreator,
// WorksheetCreator, WorksheetCompleter and WorkcellCreator. Handlers run
// synchronously in registration order and the first error aborts the export.
package hook

import (
	"fmt"
)

type Name string

const (
	WorkbookCreated    Name = "workbookCreated"
	WorksheetCreated   Name = "worksheetCreated"
	WorksheetCompleted Name = "worksheetCompleted"
	WorkcellCreated    Name = "workcellCreated"
)

// Names lists the lifecycle points in the order they first fire.
var Names = []Name{WorkbookCreated, WorksheetCreated, WorkcellCreated, WorksheetCompleted}

type WorkbookCreator interface {
	WorkbookCreated(*Context) error
}

type WorksheetCreator interface {
	WorksheetCreated(*Context) error
}

type WorksheetCompleter interface {
	WorksheetCompleted(*Context) error
}

type WorkcellCreator interface {
	WorkcellCreated(*Context) error
}

// Func adapters turn a closure into a single-capability plugin.
type (
	WorkbookCreatedFunc    func(*Context) error
	WorksheetCreatedFunc   func(*Context) error
	WorksheetCompletedFunc func(*Context) error
	WorkcellCreatedFunc    func(*Context) error
)

func (f WorkbookCreatedFunc) WorkbookCreated(c *Context) error       { return f(c) }
func (f WorksheetCreatedFunc) WorksheetCreated(c *Context) error     { return f(c) }
func (f WorksheetCompletedFunc) WorksheetCompleted(c *Context) error { return f(c) }
func (f WorkcellCreatedFunc) WorkcellCreated(c *Context) error       { return f(c) }

// Named lets a plugin report a readable name in errors and logs.
type Named interface {
	Name() string
}

// Error is a handler failure; it aborts the export.
type Error struct {
	Hook   Name
	Plugin string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("plugin %s failed in %s: %v", e.Plugin, e.Hook, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func pluginName(p any) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}

package hook

import (
	"github.com/rs/zerolog"
)

type handler struct {
	plugin string
	fn     func(*Context) error
}

// Dispatcher keeps per-hook handler lists and the accumulated context of
// one export. It is not safe for concurrent use.
type Dispatcher struct {
	handlers map[Name][]handler
	ctx      *Context
	log      zerolog.Logger
}

func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Name][]handler, len(Names)),
		ctx:      &Context{},
		log:      logger,
	}
}

// Register appends the capabilities of each plugin to the matching hook
// lists. Values exposing none of them are skipped.
func (d *Dispatcher) Register(plugins ...any) {
	for _, p := range plugins {
		if p == nil {
			continue
		}
		name := pluginName(p)
		n := 0
		if h, ok := p.(WorkbookCreator); ok {
			d.add(WorkbookCreated, name, h.WorkbookCreated)
			n++
		}
		if h, ok := p.(WorksheetCreator); ok {
			d.add(WorksheetCreated, name, h.WorksheetCreated)
			n++
		}
		if h, ok := p.(WorksheetCompleter); ok {
			d.add(WorksheetCompleted, name, h.WorksheetCompleted)
			n++
		}
		if h, ok := p.(WorkcellCreator); ok {
			d.add(WorkcellCreated, name, h.WorkcellCreated)
			n++
		}
		if n == 0 {
			d.log.Warn().Str("plugin", name).Msg("plugin exposes no hooks")
		}
	}
}

func (d *Dispatcher) add(hook Name, plugin string, fn func(*Context) error) {
	d.handlers[hook] = append(d.handlers[hook], handler{plugin: plugin, fn: fn})
}

// Invoke merges delta into the context and runs the handlers of hook in
// order. The first failing handler stops the chain.
func (d *Dispatcher) Invoke(hook Name, delta Context) error {
	d.ctx.merge(delta)
	for _, h := range d.handlers[hook] {
		if err := h.fn(d.ctx); err != nil {
			return &Error{Hook: hook, Plugin: h.plugin, Err: err}
		}
	}
	return nil
}

// Reset starts a new export: the context is emptied, handlers are kept.
func (d *Dispatcher) Reset() { d.ctx = &Context{} }

// Context returns the accumulated context.
func (d *Dispatcher) Context() *Context { return d.ctx }

// Count reports how many handlers are registered for hook.
func (d *Dispatcher) Count(hook Name) int { return len(d.handlers[hook]) }

// Plugins returns the plugin names registered for hook, in call order.
func (d *Dispatcher) Plugins(hook Name) []string {
	out := make([]string, 0, len(d.handlers[hook]))
	for _, h := range d.handlers[hook] {
		out = append(out, h.plugin)
	}
	return out
}

package plugin

import (
	"log/slog"

	"git.home.luguber.info/inful/pagetree/internal/content"
	"git.home.luguber.info/inful/pagetree/internal/logfields"
)

// Signal names, used in logs and PluginError.Operation.
const (
	SignalContentObjectInit      = "content_object_init"
	SignalPageGeneratorFinalized = "page_generator_finalized"
	SignalPageWrite              = "page_write"
)

type pageHandler struct {
	owner string
	fn    func(*content.Page) error
}

type generatorHandler struct {
	owner string
	fn    func(*content.Generator) error
}

// Hooks dispatches generator lifecycle signals to connected handlers.
// Handlers run in connection order; the first error stops dispatch.
// Hooks is not safe for concurrent use; one run owns one Hooks value.
type Hooks struct {
	logger *slog.Logger

	contentObjectInit      []pageHandler
	pageGeneratorFinalized []generatorHandler
	pageWrite              []pageHandler
}

// NewHooks creates an empty signal bus.
func NewHooks(logger *slog.Logger) *Hooks {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hooks{logger: logger}
}

// OnContentObjectInit connects fn to the signal sent once per content object
// after it has been created.
func (h *Hooks) OnContentObjectInit(owner string, fn func(*content.Page) error) {
	h.contentObjectInit = append(h.contentObjectInit, pageHandler{owner: owner, fn: fn})
}

// OnPageGeneratorFinalized connects fn to the signal sent once after every
// page and translation has been generated.
func (h *Hooks) OnPageGeneratorFinalized(owner string, fn func(*content.Generator) error) {
	h.pageGeneratorFinalized = append(h.pageGeneratorFinalized, generatorHandler{owner: owner, fn: fn})
}

// OnPageWrite connects fn to the signal sent right before a page is written.
func (h *Hooks) OnPageWrite(owner string, fn func(*content.Page) error) {
	h.pageWrite = append(h.pageWrite, pageHandler{owner: owner, fn: fn})
}

// ContentObjectInit dispatches the content-object-init signal for p.
func (h *Hooks) ContentObjectInit(p *content.Page) error {
	return h.sendPage(SignalContentObjectInit, h.contentObjectInit, p)
}

// PageWrite dispatches the page-write signal for p.
func (h *Hooks) PageWrite(p *content.Page) error {
	return h.sendPage(SignalPageWrite, h.pageWrite, p)
}

// PageGeneratorFinalized dispatches the generator-finalized signal.
func (h *Hooks) PageGeneratorFinalized(g *content.Generator) error {
	for _, handler := range h.pageGeneratorFinalized {
		h.logger.Debug("Dispatching signal",
			logfields.Signal(SignalPageGeneratorFinalized),
			logfields.Plugin(handler.owner),
			logfields.Count(g.Len()))
		if err := handler.fn(g); err != nil {
			return NewPluginError(handler.owner, SignalPageGeneratorFinalized, err)
		}
	}
	return nil
}

// Receivers returns the number of handlers connected to signal.
func (h *Hooks) Receivers(signal string) int {
	switch signal {
	case SignalContentObjectInit:
		return len(h.contentObjectInit)
	case SignalPageGeneratorFinalized:
		return len(h.pageGeneratorFinalized)
	case SignalPageWrite:
		return len(h.pageWrite)
	default:
		return 0
	}
}

func (h *Hooks) sendPage(signal string, handlers []pageHandler, p *content.Page) error {
	for _, handler := range handlers {
		if err := handler.fn(p); err != nil {
			return NewPluginError(handler.owner, signal, err)
		}
	}
	return nil
}

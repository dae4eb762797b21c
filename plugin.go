// Package todomark highlights every occurrence of the token TODO in a
// document, both in the live editing view and in the rendered preview, in
// a single user configurable colour.
//
// A Plugin is the context object shared by the decorators and the settings
// tab. Hosts create one with New, call Init when they load it and Teardown
// when they unload it.
package todomark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/oligo/todomark/render"
	"github.com/oligo/todomark/render/htmlpost"
	"github.com/oligo/todomark/settings"
	"github.com/oligo/todomark/textstyle"
	"github.com/oligo/todomark/textstyle/decoration"
	"golang.org/x/net/html"
)

// ErrInvalidColor is returned by SetColor for values that are not a hex
// colour.
var ErrInvalidColor = errors.New("invalid highlight colour")

// Options configures a Plugin.
type Options struct {
	// Store persists the highlight colour. Defaults to an in-memory store.
	Store settings.Store
	// Sinks receive the highlight colour whenever it changes.
	Sinks []textstyle.Sink
	// Processor post-processes rendered HTML. Defaults to the node aware
	// strategy.
	Processor *htmlpost.Processor
	Logger    *slog.Logger
}

// Plugin owns the highlight colour and applies it to the style sinks.
type Plugin struct {
	mu    sync.RWMutex
	color string

	// serializes saves so that the persisted and in-memory colours agree.
	saveMu sync.Mutex
	store  settings.Store
	sinks  textstyle.Sinks
	post   *htmlpost.Processor
	// set from Options.Logger; the package logger is used otherwise.
	logger *slog.Logger
}

func New(opts Options) *Plugin {
	p := &Plugin{
		color: settings.DefaultColor,
		store: opts.Store,
		sinks: textstyle.Sinks(opts.Sinks),
		post:  opts.Processor,
	}

	if p.store == nil {
		p.store = &settings.MemoryStore{}
	}
	if p.post == nil {
		p.post = &htmlpost.Processor{}
	}
	if opts.Logger != nil {
		p.logger = opts.Logger.WithGroup(logGroup)
	}
	return p
}

// Init loads the persisted colour and applies it. A failed load is not
// fatal: the default colour is used instead.
func (p *Plugin) Init(ctx context.Context) error {
	st, err := p.store.Load(ctx)
	if err != nil {
		p.log().Warn("failed to load settings, using default colour", "error", err)
		st = settings.Defaults()
	}

	c := st.Normalize().TodoColor
	if !validColor(c) {
		p.log().Warn("ignoring invalid persisted colour", "color", c)
		c = settings.DefaultColor
	}

	p.mu.Lock()
	p.color = c
	p.mu.Unlock()

	p.log().Debug("plugin loaded", "color", c)
	return p.sinks.Apply(c)
}

// Teardown removes the applied style from every sink. It can be called
// any number of times, even if Init never ran.
func (p *Plugin) Teardown() {
	p.sinks.Remove()
	p.log().Debug("plugin unloaded")
}

// Color returns the current highlight colour. It is never empty.
func (p *Plugin) Color() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.color
}

// SetColor persists c and applies it. The colour in use is left untouched
// when c is invalid or cannot be saved.
func (p *Plugin) SetColor(ctx context.Context, c string) error {
	if !validColor(c) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}

	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	if err := p.store.Save(ctx, settings.Settings{TodoColor: c}); err != nil {
		p.log().Error("failed to save settings", "color", c, "error", err)
		return fmt.Errorf("saving highlight colour: %w", err)
	}

	p.mu.Lock()
	p.color = c
	p.mu.Unlock()

	return p.sinks.Apply(c)
}

// ResetColor restores the default colour.
func (p *Plugin) ResetColor(ctx context.Context) error {
	return p.SetColor(ctx, settings.DefaultColor)
}

// Reload re-reads the persisted colour, e.g. after the settings file was
// changed by another process. The colour in use is kept on failure.
func (p *Plugin) Reload(ctx context.Context) error {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	st, err := p.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("reloading settings: %w", err)
	}

	c := st.Normalize().TodoColor
	if !validColor(c) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}

	p.mu.Lock()
	changed := p.color != c
	p.color = c
	p.mu.Unlock()

	if !changed {
		return nil
	}
	p.log().Info("highlight colour reloaded", "color", c)
	return p.sinks.Apply(c)
}

// Watch reloads the colour on every signal from changes until ctx is done
// or changes is closed. onReload, if not nil, is called after every
// successful reload.
func (p *Plugin) Watch(ctx context.Context, changes <-chan struct{}, onReload func(color string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := p.Reload(ctx); err != nil {
				p.log().Warn("failed to reload settings", "error", err)
				continue
			}
			if onReload != nil {
				onReload(p.Color())
			}
		}
	}
}

// Decorate computes the marks of the visible windows of src.
func (p *Plugin) Decorate(src decoration.Source, windows []decoration.Window) *decoration.Set {
	return decoration.Build(src, windows)
}

// RenderBlock splits the text of a rendered block into plain and marked
// fragments.
func (p *Plugin) RenderBlock(text string) render.Fragments {
	return render.Split(text)
}

// PostProcess marks the token occurrences of the rendered HTML under root
// and returns how many were marked.
func (p *Plugin) PostProcess(root *html.Node) int {
	return p.post.Process(root)
}

// log returns the injected logger, or the package logger as currently set
// by SetLogger.
func (p *Plugin) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return logger
}

func validColor(c string) bool {
	_, err := textstyle.ParseColor(c)
	return err == nil
}

// Package controller routes user actions to state changes and re-renders.
//
// Every action follows the same cycle: mutate one piece of state, render the
// full table again, hand the frame to the display. Nothing is patched in
// place. A Controller is not safe for concurrent use; callers serialize
// actions (the TUI does so through its update loop).
package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/nikbrunner/linkdir/internal/model"
	"github.com/nikbrunner/linkdir/internal/render"
	"github.com/nikbrunner/linkdir/internal/state"
	"github.com/nikbrunner/linkdir/internal/viewed"
)

// ViewedTrigger selects which action marks links as viewed.
type ViewedTrigger int

const (
	// ViewedOnLink marks a link when it is opened.
	ViewedOnLink ViewedTrigger = iota
	// ViewedOnExpand marks every link of a category when it is expanded,
	// whether by a toggle, ExpandAll or the start-expanded load.
	ViewedOnExpand
)

// ParseViewedTrigger maps "link" / "expand" to a ViewedTrigger.
func ParseViewedTrigger(s string) ViewedTrigger {
	if s == "expand" {
		return ViewedOnExpand
	}
	return ViewedOnLink
}

// Frame is one complete projection handed to the display.
type Frame struct {
	Rows      []render.Row
	Column    model.Column
	Ascending bool
	Query     string
	Loading   bool  // dataset not loaded yet
	Err       error // load failure, shown as an error state
}

// Display materializes frames.
type Display interface {
	Show(Frame)
}

// Opener navigates to a link, e.g. by launching a browser.
type Opener interface {
	Open(link string) error
}

// Params holds parameters for creating a Controller.
type Params struct {
	Store         *model.Store // nil until a Loaded action arrives
	View          *state.ViewState
	Tracker       *viewed.Tracker
	Display       Display     // optional
	Opener        Opener      // optional
	Logger        *zap.Logger // optional, defaults to a no-op logger
	StartExpanded bool
	ViewedOn      ViewedTrigger
}

// Controller owns the dataset, the view state and the viewed set.
type Controller struct {
	store   *model.Store
	view    *state.ViewState
	tracker *viewed.Tracker
	display Display
	opener  Opener
	logger  *zap.Logger

	startExpanded bool
	viewedOn      ViewedTrigger

	loaded  bool
	loadErr error
	pending []Action // actions waiting for the dataset
	last    Frame
}

// New creates a Controller. When params.Store is set the dataset counts as
// loaded immediately.
func New(params Params) *Controller {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	view := params.View
	if view == nil {
		view = state.New(state.Options{})
	}
	tracker := params.Tracker
	if tracker == nil {
		tracker = viewed.New(nil, viewed.Options{Logger: logger})
	}

	c := &Controller{
		view:          view,
		tracker:       tracker,
		display:       params.Display,
		opener:        params.Opener,
		logger:        logger,
		startExpanded: params.StartExpanded,
		viewedOn:      params.ViewedOn,
	}
	if params.Store != nil {
		c.load(context.Background(), params.Store)
	}
	return c
}

// Dispatch applies a, re-renders and shows the resulting frame.
// Actions that need the dataset are queued until it has loaded.
func (c *Controller) Dispatch(ctx context.Context, a Action) Frame {
	if !c.loaded && needsStore(a) {
		c.logger.Debug("action queued until load", zap.String("action", a.name()))
		c.pending = append(c.pending, a)
		return c.show()
	}

	c.logger.Debug("action", zap.String("action", a.name()))

	switch a := a.(type) {
	case Loaded:
		c.load(ctx, a.Store)
		frame := c.show()
		return c.replay(ctx, frame)

	case LoadFailed:
		c.logger.Error("load failed, continuing with an empty directory", zap.Error(a.Err))
		c.load(ctx, model.NewStore())
		c.loadErr = a.Err
		frame := c.show()
		return c.replay(ctx, frame)

	case ToggleCategory:
		if !c.view.ToggleCategory(a.Key) {
			c.logger.Debug("toggle of unknown category ignored", zap.String("key", a.Key))
			break
		}
		if c.viewedOn == ViewedOnExpand && c.view.IsExpanded(a.Key) {
			c.markCategories(ctx, a.Key)
		}

	case ExpandAll:
		c.view.ExpandAll()
		if c.viewedOn == ViewedOnExpand {
			c.markCategories(ctx, c.store.Keys()...)
		}

	case CollapseAll:
		c.view.CollapseAll()

	case SortBy:
		c.view.SetSort(a.Column)
		col, asc := c.view.Sort()
		c.store.SortBy(col, asc)

	case Search:
		c.view.SetSearch(a.Query)

	case OpenLink:
		if c.viewedOn == ViewedOnLink {
			if err := c.tracker.MarkViewed(ctx, a.Link); err != nil {
				c.logger.Warn("viewed link not persisted", zap.String("link", a.Link), zap.Error(err))
			}
		}
		frame := c.show()
		if c.opener != nil {
			if err := c.opener.Open(a.Link); err != nil {
				c.logger.Warn("open link", zap.String("link", a.Link), zap.Error(err))
			}
		}
		return frame

	case Refresh:
	}

	return c.show()
}

// load installs store, applies the current sort and the initial expansion.
func (c *Controller) load(ctx context.Context, store *model.Store) {
	c.store = store
	c.loaded = true
	c.loadErr = nil
	c.view.SetKeys(store.Keys())

	col, asc := c.view.Sort()
	store.SortBy(col, asc)
	if c.startExpanded {
		c.view.ExpandAll()
		if c.viewedOn == ViewedOnExpand {
			c.markCategories(ctx, store.Keys()...)
		}
	}
	c.logger.Info("directory loaded",
		zap.Int("categories", store.Len()),
		zap.Int("entries", store.EntryCount()))
}

// replay dispatches the actions queued before the load completed.
func (c *Controller) replay(ctx context.Context, frame Frame) Frame {
	pending := c.pending
	c.pending = nil
	for _, a := range pending {
		frame = c.Dispatch(ctx, a)
	}
	return frame
}

// markCategories marks every link of the given categories viewed and
// persists once.
func (c *Controller) markCategories(ctx context.Context, keys ...string) {
	var links []string
	for _, key := range keys {
		if cat := c.store.Category(key); cat != nil {
			for _, e := range cat.Entries {
				links = append(links, e.Link)
			}
		}
	}
	if len(links) == 0 {
		return
	}
	if err := c.tracker.MarkAll(ctx, links); err != nil {
		c.logger.Warn("viewed links not persisted", zap.Strings("categories", keys), zap.Error(err))
	}
}

// show renders the current state and hands it to the display.
func (c *Controller) show() Frame {
	col, asc := c.view.Sort()
	frame := Frame{
		Rows:      render.Render(c.store, c.view, c.tracker),
		Column:    col,
		Ascending: asc,
		Query:     c.view.Query(),
		Loading:   !c.loaded,
		Err:       c.loadErr,
	}
	c.last = frame
	if c.display != nil {
		c.display.Show(frame)
	}
	return frame
}

// Frame returns the most recently rendered frame.
func (c *Controller) Frame() Frame {
	return c.last
}

// Loaded reports whether the dataset has arrived (or failed to).
func (c *Controller) Loaded() bool {
	return c.loaded
}

// Pending returns the number of queued actions.
func (c *Controller) Pending() int {
	return len(c.pending)
}

// Store returns the dataset, nil before load.
func (c *Controller) Store() *model.Store {
	return c.store
}

// View returns the view state.
func (c *Controller) View() *state.ViewState {
	return c.view
}

// Tracker returns the viewed-link tracker.
func (c *Controller) Tracker() *viewed.Tracker {
	return c.tracker
}

package tui_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/linkdir/internal/controller"
	"github.com/nikbrunner/linkdir/internal/model"
	"github.com/nikbrunner/linkdir/internal/storage"
	"github.com/nikbrunner/linkdir/internal/tui"
	"github.com/nikbrunner/linkdir/internal/viewed"
)

const doc = `{"categories": {
  "Browsers": [
    {"name": "firefox", "description": "ML-KEM", "link": "https://firefox", "date": "03/01/2024"},
    {"name": "Chrome", "description": "Kyber", "link": "https://chrome", "date": "08/15/2023"}
  ],
  "SSH": [
    {"name": "OpenSSH", "description": "sntrup761", "link": "https://openssh"}
  ]
}}`

type opener struct{ opened []string }

func (o *opener) Open(link string) error {
	o.opened = append(o.opened, link)
	return nil
}

func parse(t *testing.T) *model.Store {
	t.Helper()
	store, err := model.ParseDocument([]byte(doc))
	assert.NilError(t, err)
	return store
}

func newApp(t *testing.T, expanded bool) (tui.App, *opener) {
	t.Helper()
	op := &opener{}
	app := tui.NewApp(tui.AppParams{
		Controller: controller.Params{
			Store:         parse(t),
			Opener:        op,
			StartExpanded: expanded,
		},
		Clipboard: func(string) error { return nil },
	})
	return app, op
}

func press(app tui.App, keys ...string) tui.App {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := app.Update(msg)
		app = updated.(tui.App)
	}
	return app
}

// labels renders the drawn rows compactly.
func labels(app tui.App) []string {
	var out []string
	for _, r := range app.Rows() {
		if r.IsHeader() {
			out = append(out, "# "+r.Name)
		} else {
			out = append(out, r.Entry.Name)
		}
	}
	return out
}

func TestApp_Navigation_JK(t *testing.T) {
	app, _ := newApp(t, false)
	assert.DeepEqual(t, labels(app), []string{"# Browsers", "# SSH"})
	assert.Equal(t, app.Cursor(), 0)

	app = press(app, "j")
	assert.Equal(t, app.Cursor(), 1)

	// Bounded at the bottom.
	app = press(app, "j")
	assert.Equal(t, app.Cursor(), 1)

	app = press(app, "k", "k")
	assert.Equal(t, app.Cursor(), 0)
}

func TestApp_Navigation_GG_G(t *testing.T) {
	app, _ := newApp(t, true)

	app = press(app, "G")
	assert.Equal(t, app.Cursor(), 4)

	// A single g waits for the second one.
	app = press(app, "g")
	assert.Equal(t, app.Cursor(), 4)

	app = press(app, "g")
	assert.Equal(t, app.Cursor(), 0)

	// g followed by another key does not jump.
	app = press(app, "G", "g", "k", "g")
	assert.Equal(t, app.Cursor(), 3)
}

func TestApp_ToggleCategory(t *testing.T) {
	app, _ := newApp(t, false)

	app = press(app, "enter")
	assert.DeepEqual(t, labels(app), []string{"# Browsers", "Chrome", "firefox", "# SSH"})
	assert.Equal(t, app.Cursor(), 0)

	app = press(app, "l")
	assert.DeepEqual(t, labels(app), []string{"# Browsers", "# SSH"})
}

func TestApp_OpenEntryMarksViewed(t *testing.T) {
	app, op := newApp(t, true)

	app = press(app, "j", "enter")

	assert.DeepEqual(t, op.opened, []string{"https://chrome"})
	assert.Assert(t, app.Controller().Tracker().IsViewed("https://chrome"))
	assert.Assert(t, app.Rows()[1].Viewed)
	assert.Check(t, is.Contains(app.Message(), "Chrome"))

	// o opens too, but not on a header.
	app = press(app, "k", "o")
	assert.Equal(t, len(op.opened), 1)
	app = press(app, "j", "j", "o")
	assert.DeepEqual(t, op.opened, []string{"https://chrome", "https://firefox"})
}

func TestApp_SortKeepsCursorOnRow(t *testing.T) {
	app, _ := newApp(t, true)
	app = press(app, "j")
	assert.Equal(t, app.Rows()[app.Cursor()].Entry.Name, "Chrome")

	app = press(app, "1")

	assert.Assert(t, !app.Frame().Ascending)
	assert.DeepEqual(t, labels(app), []string{"# Browsers", "firefox", "Chrome", "# SSH", "OpenSSH"})
	assert.Equal(t, app.Cursor(), 2)

	app = press(app, "4")
	assert.Equal(t, app.Frame().Column, model.ColumnDate)
}

func TestApp_CollapseAllClampsCursor(t *testing.T) {
	app, _ := newApp(t, true)
	app = press(app, "G")
	assert.Equal(t, app.Cursor(), 4)

	app = press(app, "C")
	assert.DeepEqual(t, labels(app), []string{"# Browsers", "# SSH"})
	assert.Equal(t, app.Cursor(), 1)

	app = press(app, "E")
	assert.Check(t, is.Len(app.Rows(), 5))
}

func TestApp_Search(t *testing.T) {
	app, _ := newApp(t, true)

	app = press(app, "/")
	assert.Equal(t, app.Mode(), tui.ModeSearch)

	app = press(app, "s", "s", "h")
	assert.Equal(t, app.Frame().Query, "ssh")
	assert.DeepEqual(t, labels(app), []string{"# SSH", "OpenSSH"})

	app = press(app, "enter")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, app.Frame().Query, "ssh")

	// Esc in normal mode clears the filter.
	app = press(app, "esc")
	assert.Equal(t, app.Frame().Query, "")
	assert.Check(t, is.Len(app.Rows(), 5))
}

func TestApp_SearchEscClears(t *testing.T) {
	app, _ := newApp(t, true)

	app = press(app, "/", "k", "y")
	assert.Equal(t, app.Frame().Query, "ky")

	app = press(app, "esc")
	assert.Equal(t, app.Mode(), tui.ModeNormal)
	assert.Equal(t, app.Frame().Query, "")
}

func TestApp_SearchDebounce(t *testing.T) {
	app := tui.NewApp(tui.AppParams{
		Controller:     controller.Params{Store: parse(t), StartExpanded: true},
		SearchDebounce: time.Millisecond,
	})
	app = press(app, "/")

	updated, first := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	app = updated.(tui.App)
	updated, second := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	app = updated.(tui.App)
	assert.Equal(t, app.Frame().Query, "")
	assert.Assert(t, first != nil && second != nil)

	// The first tick is stale by now.
	updated, _ = app.Update(first())
	app = updated.(tui.App)
	assert.Equal(t, app.Frame().Query, "")

	updated, _ = app.Update(second())
	app = updated.(tui.App)
	assert.Equal(t, app.Frame().Query, "ss")
}

func TestApp_YankLink(t *testing.T) {
	var copied []string
	app := tui.NewApp(tui.AppParams{
		Controller: controller.Params{Store: parse(t), StartExpanded: true},
		Clipboard: func(s string) error {
			copied = append(copied, s)
			return nil
		},
	})

	// Headers have no link.
	app = press(app, "Y")
	assert.Check(t, is.Len(copied, 0))

	app = press(app, "G", "Y")
	assert.DeepEqual(t, copied, []string{"https://openssh"})
	assert.Check(t, is.Contains(app.Message(), "https://openssh"))
}

func TestApp_YankLinkError(t *testing.T) {
	app := tui.NewApp(tui.AppParams{
		Controller: controller.Params{Store: parse(t), StartExpanded: true},
		Clipboard:  func(string) error { return errors.New("no clipboard") },
	})

	app = press(app, "j", "Y")
	assert.Equal(t, app.Message(), "Could not copy link")
}

func TestApp_ThemeIsPersisted(t *testing.T) {
	kv := storage.NewJSONStorage(filepath.Join(t.TempDir(), "state.json"))
	params := tui.AppParams{Controller: controller.Params{Store: parse(t)}, KV: kv}

	app := tui.NewApp(params)
	assert.Equal(t, app.Theme(), tui.ThemeDark)

	app = press(app, "T")
	assert.Equal(t, app.Theme(), tui.ThemeLight)
	saved, err := kv.Get(context.Background(), tui.ThemeKey)
	assert.NilError(t, err)
	assert.Equal(t, saved, "light")

	params.Controller.Store = parse(t)
	assert.Equal(t, tui.NewApp(params).Theme(), tui.ThemeLight)
}

func TestApp_AsyncLoadReplaysQueuedActions(t *testing.T) {
	app := tui.NewApp(tui.AppParams{
		Load: func(context.Context) (*model.Store, error) {
			return model.ParseDocument([]byte(doc))
		},
	})
	assert.Assert(t, app.Frame().Loading)
	assert.Check(t, is.Contains(app.View(), "Loading directory..."))

	// Expanding before the data arrives waits for it.
	app = press(app, "E")

	cmd := app.Init()
	assert.Assert(t, cmd != nil)
	updated, _ := app.Update(cmd())
	app = updated.(tui.App)

	assert.Assert(t, !app.Frame().Loading)
	assert.Check(t, is.Len(app.Rows(), 5))
	assert.Equal(t, app.Controller().Pending(), 0)
}

func TestApp_LoadFailure(t *testing.T) {
	app := tui.NewApp(tui.AppParams{
		Load: func(context.Context) (*model.Store, error) {
			return nil, errors.New("connection refused")
		},
	})

	updated, _ := app.Update(app.Init()())
	app = updated.(tui.App)

	assert.ErrorContains(t, app.Frame().Err, "connection refused")
	assert.Check(t, is.Contains(app.Message(), "connection refused"))
	assert.Check(t, is.Contains(app.View(), "Directory unavailable"))

	// The empty table stays usable.
	app = press(app, "1", "/", "x", "enter", "j")
	assert.Check(t, is.Len(app.Rows(), 0))
	assert.Equal(t, app.Cursor(), 0)
}

func TestApp_ViewedTrackerIsShared(t *testing.T) {
	tracker := viewed.New(nil, viewed.Options{})
	assert.NilError(t, tracker.MarkViewed(context.Background(), "https://openssh"))

	app := tui.NewApp(tui.AppParams{
		Controller: controller.Params{Store: parse(t), Tracker: tracker, StartExpanded: true},
	})

	rows := app.Rows()
	assert.Assert(t, rows[4].Viewed)
	assert.Assert(t, !rows[1].Viewed)
}

func TestApp_View(t *testing.T) {
	app, _ := newApp(t, true)
	updated, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = updated.(tui.App)

	out := app.View()

	for _, want := range []string{"linkdir", "2 categories", "Name ▲", "Browsers (2)", "Chrome", "https://openssh", "08/15/2023"} {
		assert.Check(t, is.Contains(out, want))
	}
	assert.Check(t, !strings.Contains(out, "01/01/1970"))
}

func TestApp_Quit(t *testing.T) {
	app, _ := newApp(t, false)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Assert(t, cmd != nil)
}

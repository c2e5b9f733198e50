package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/linkdir/internal/controller"
	"github.com/nikbrunner/linkdir/internal/model"
	"github.com/nikbrunner/linkdir/internal/render"
	"github.com/nikbrunner/linkdir/internal/storage"
	"github.com/nikbrunner/linkdir/internal/tui/layout"
	"github.com/nikbrunner/linkdir/internal/viewed"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// MessageType determines the styling of the status message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// LoadFunc fetches the directory. It runs outside the update loop.
type LoadFunc func(ctx context.Context) (*model.Store, error)

// loadedMsg carries the result of a LoadFunc back into the update loop.
type loadedMsg struct {
	store *model.Store
	err   error
}

// searchTickMsg fires after the debounce delay; stale ticks are ignored.
type searchTickMsg struct {
	seq int
}

// frameSink is the controller.Display of the TUI. It is shared by every copy
// of App so the latest frame survives bubbletea's value semantics.
type frameSink struct {
	frame controller.Frame
}

func (s *frameSink) Show(f controller.Frame) {
	s.frame = f
}

// App is the main bubbletea model for the directory browser.
type App struct {
	ctx       context.Context
	ctrl      *controller.Controller
	sink      *frameSink
	load      LoadFunc
	kv        storage.KV
	copyLink  func(string) error
	logger    *zap.Logger
	keys      KeyMap
	theme     Theme
	styles    Styles
	layoutCfg layout.LayoutConfig

	mode        Mode
	searchInput textinput.Model
	debounce    time.Duration
	searchSeq   int

	cursor      int // index into the shown rows
	lastKeyWasG bool

	messageText string
	messageType MessageType

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	// Controller configures the engine; its Display is set by the app.
	Controller controller.Params
	// Load fetches the directory on start. Leave nil when
	// Controller.Store is already set.
	Load           LoadFunc
	KV             storage.KV           // optional, persists the theme
	Clipboard      func(string) error   // optional, defaults to the system clipboard
	SearchDebounce time.Duration        // 0 applies each keystroke at once
	Keys           *KeyMap              // optional, uses default if nil
	LayoutConfig   *layout.LayoutConfig // optional, uses default if nil
	Context        context.Context      // optional
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := params.Controller.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	sink := &frameSink{}
	ctrlParams := params.Controller
	ctrlParams.Display = sink
	ctrlParams.Logger = logger
	ctrl := controller.New(ctrlParams)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search..."
	searchInput.Prompt = "/ "
	searchInput.CharLimit = layoutCfg.Input.SearchCharLimit
	searchInput.Width = layoutCfg.Input.SearchWidth
	searchInput.Cursor.SetMode(cursor.CursorStatic)

	theme := loadTheme(ctx, params.KV, logger)

	app := App{
		ctx:         ctx,
		ctrl:        ctrl,
		sink:        sink,
		load:        params.Load,
		kv:          params.KV,
		copyLink:    copyFn,
		logger:      logger,
		keys:        keys,
		theme:       theme,
		styles:      DefaultStyles(theme),
		layoutCfg:   layoutCfg,
		searchInput: searchInput,
		debounce:    params.SearchDebounce,
		width:       80,
		height:      24,
	}

	// First projection: the loading state, or the table when a store was given.
	ctrl.Dispatch(ctx, controller.Refresh{})
	return app
}

// loadTheme restores the saved theme, falling back to dark.
func loadTheme(ctx context.Context, kv storage.KV, logger *zap.Logger) Theme {
	if kv == nil {
		return ThemeDark
	}
	saved, err := kv.Get(ctx, ThemeKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("theme unreadable", zap.Error(err))
		}
		return ThemeDark
	}
	theme, err := ParseTheme(saved)
	if err != nil {
		logger.Warn("ignoring saved theme", zap.Error(err))
		return ThemeDark
	}
	return theme
}

// Cursor returns the current cursor position within the shown rows.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Theme returns the active theme.
func (a App) Theme() Theme {
	return a.theme
}

// Message returns the current status message.
func (a App) Message() string {
	return a.messageText
}

// Frame returns the latest frame shown by the controller.
func (a App) Frame() controller.Frame {
	return a.sink.frame
}

// Rows returns the rows currently drawn, collapsed entries excluded.
func (a App) Rows() []render.Row {
	return render.Visible(a.sink.frame.Rows)
}

// Controller returns the underlying controller.
func (a App) Controller() *controller.Controller {
	return a.ctrl
}

// selectedRow returns the row under the cursor.
func (a App) selectedRow() (render.Row, bool) {
	rows := a.Rows()
	if a.cursor < 0 || a.cursor >= len(rows) {
		return render.Row{}, false
	}
	return rows[a.cursor], true
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.load == nil || a.ctrl.Loaded() {
		return nil
	}
	load, ctx := a.load, a.ctx
	return func() tea.Msg {
		store, err := load(ctx)
		return loadedMsg{store: store, err: err}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case loadedMsg:
		if msg.err != nil {
			a.dispatch(controller.LoadFailed{Err: msg.err})
			a.setMessage(MessageError, "Could not load directory: "+msg.err.Error())
			return a, nil
		}
		a.dispatch(controller.Loaded{Store: msg.store})
		return a, nil

	case searchTickMsg:
		if msg.seq == a.searchSeq {
			a.applySearch()
		}
		return a, nil

	case tea.KeyMsg:
		if a.mode == ModeSearch {
			return a.updateSearch(msg)
		}
		return a.updateNormal(msg)
	}

	return a, nil
}

// updateSearch handles keys while the search input has focus.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.mode = ModeNormal
		a.searchSeq++
		a.applySearch()
		return a, nil

	case tea.KeyEnter:
		a.searchInput.Blur()
		a.mode = ModeNormal
		a.searchSeq++
		a.applySearch()
		return a, nil

	case tea.KeyCtrlC:
		return a, tea.Quit
	}

	before := a.searchInput.Value()
	a.searchInput, _ = a.searchInput.Update(msg)
	if a.searchInput.Value() == before {
		return a, nil
	}

	a.searchSeq++
	if a.debounce <= 0 {
		a.applySearch()
		return a, nil
	}
	seq := a.searchSeq
	return a, tea.Tick(a.debounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

// applySearch sends the input's current value to the controller.
func (a *App) applySearch() {
	query := a.searchInput.Value()
	if query == a.Frame().Query {
		return
	}
	a.ctrl.Dispatch(a.ctx, controller.Search{Query: query})
	a.cursor = 0
}

// updateNormal handles keys in normal mode.
func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false
	a.messageText = ""

	rows := a.Rows()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(rows)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(rows) > 0 {
			a.cursor = len(rows) - 1
		}

	case key.Matches(msg, a.keys.Toggle):
		row, ok := a.selectedRow()
		if !ok {
			break
		}
		if row.IsHeader() {
			a.dispatch(controller.ToggleCategory{Key: row.Key})
		} else {
			a.openLink(row.Entry)
		}

	case key.Matches(msg, a.keys.Open):
		if row, ok := a.selectedRow(); ok && !row.IsHeader() {
			a.openLink(row.Entry)
		}

	case key.Matches(msg, a.keys.ExpandAll):
		a.dispatch(controller.ExpandAll{})

	case key.Matches(msg, a.keys.CollapseAll):
		a.dispatch(controller.CollapseAll{})

	case key.Matches(msg, a.keys.SortName):
		a.dispatch(controller.SortBy{Column: model.ColumnName})

	case key.Matches(msg, a.keys.SortDescription):
		a.dispatch(controller.SortBy{Column: model.ColumnDescription})

	case key.Matches(msg, a.keys.SortLink):
		a.dispatch(controller.SortBy{Column: model.ColumnLink})

	case key.Matches(msg, a.keys.SortDate):
		a.dispatch(controller.SortBy{Column: model.ColumnDate})

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.searchInput.SetValue(a.Frame().Query)
		a.searchInput.CursorEnd()
		a.searchInput.Focus()

	case key.Matches(msg, a.keys.ClearSearch):
		if a.Frame().Query != "" {
			a.searchInput.SetValue("")
			a.searchSeq++
			a.applySearch()
		}

	case key.Matches(msg, a.keys.YankLink):
		row, ok := a.selectedRow()
		if !ok || row.IsHeader() {
			break
		}
		if err := a.copyLink(row.Entry.Link); err != nil {
			a.logger.Warn("copy link", zap.Error(err))
			a.setMessage(MessageError, "Could not copy link")
			break
		}
		a.setMessage(MessageSuccess, "Copied "+row.Entry.Link)

	case key.Matches(msg, a.keys.Theme):
		a.toggleTheme()
	}

	return a, nil
}

// dispatch runs an action and keeps the cursor on the same row when that
// row is still shown.
func (a *App) dispatch(action controller.Action) {
	before, had := a.selectedRow()
	a.ctrl.Dispatch(a.ctx, action)

	rows := a.Rows()
	if had {
		for i, r := range rows {
			if sameRow(r, before) {
				a.cursor = i
				return
			}
		}
	}
	a.clampCursor(len(rows))
}

func (a *App) openLink(e model.Entry) {
	a.dispatch(controller.OpenLink{Link: e.Link})
	a.setMessage(MessageInfo, "Opened "+e.Name)
}

func (a *App) toggleTheme() {
	a.theme = a.theme.Toggle()
	a.styles = DefaultStyles(a.theme)
	if a.kv == nil {
		return
	}
	if err := a.kv.Set(a.ctx, ThemeKey, string(a.theme), viewed.DefaultTTL); err != nil {
		a.logger.Warn("theme not persisted", zap.Error(err))
	}
}

func (a *App) clampCursor(n int) {
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

// sameRow reports whether two rows stand for the same header or entry.
func sameRow(x, y render.Row) bool {
	if x.Kind != y.Kind || x.Key != y.Key {
		return false
	}
	if x.IsHeader() {
		return true
	}
	return x.Entry.Link == y.Entry.Link && x.Entry.Name == y.Entry.Name
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

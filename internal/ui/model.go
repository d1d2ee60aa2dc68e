package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/prompter/internal/capture"
	"github.com/faizmokh/prompter/internal/files"
	"github.com/faizmokh/prompter/internal/logging"
	"github.com/faizmokh/prompter/internal/script"
	"github.com/faizmokh/prompter/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// lines used by everything except the body viewport
	chromeHeight = 12
)

// Options configures a Model.
type Options struct {
	Path        string
	Device      string
	MaxDuration time.Duration
	AutoAdvance bool
	Style       session.Style
	Logger      *slog.Logger
	Clock       func() time.Time
}

// Model owns Bubble Tea state for the teleprompter.
type Model struct {
	ctx      context.Context
	manager  *files.Manager
	recorder *capture.Recorder
	session  *session.Session
	log      *slog.Logger

	path        string
	device      string
	maxDuration time.Duration

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	progress progress.Model
	width    int
	height   int

	loading    bool
	starting   bool
	recording  bool
	stopping   bool
	statusLine string
	errorLine  string
}

type scriptLoadedMsg struct {
	path     string
	sections []script.Section
	warnings []script.Warning
	err      error
}

type tickMsg time.Time

type recordStartedMsg struct {
	device string
	err    error
}

type recordSavedMsg struct {
	path string
	err  error
}

// NewModel seeds a Bubble Tea model with required collaborators.
func NewModel(ctx context.Context, manager *files.Manager, recorder *capture.Recorder, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	sessionOpts := []session.Option{
		session.WithStyle(opts.Style),
		session.WithAutoAdvance(opts.AutoAdvance),
	}
	if opts.Clock != nil {
		sessionOpts = append(sessionOpts, session.WithClock(opts.Clock))
	}

	m := Model{
		ctx:         ctx,
		manager:     manager,
		recorder:    recorder,
		session:     session.New(nil, sessionOpts...),
		log:         log,
		path:        opts.Path,
		device:      opts.Device,
		maxDuration: opts.MaxDuration,
		keys:        defaultKeyMap(),
		help:        help.New(),
		viewport:    viewport.New(defaultWidth, defaultHeight-chromeHeight),
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	if m.maxDuration <= 0 {
		m.maxDuration = capture.DefaultMaxDuration
	}
	if m.path != "" {
		m.loading = true
		m.statusLine = fmt.Sprintf("Loading %s...", filepath.Base(m.path))
	} else {
		m.statusLine = "No script loaded. Run prompter <file.md>."
	}
	m.resize(m.width, m.height)
	return m
}

// Init loads the script and starts the clock.
func (m Model) Init() tea.Cmd {
	if m.path == "" {
		return tick()
	}
	return tea.Batch(m.loadScriptCmd(m.path), tick())
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case scriptLoadedMsg:
		return m.handleScriptLoaded(msg)
	case tickMsg:
		return m.handleTick()
	case recordStartedMsg:
		return m.handleRecordStarted(msg)
	case recordSavedMsg:
		return m.handleRecordSaved(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.recording && !m.stopping {
			m.log.Warn("quitting with capture in progress, saving first")
			return m, tea.Sequence(m.beginStop(), tea.Quit)
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.navigate(m.session.Next())
	case key.Matches(msg, m.keys.Prev):
		m.navigate(m.session.Prev())
	case key.Matches(msg, m.keys.First):
		m.navigate(m.session.Jump(0))
	case key.Matches(msg, m.keys.Last):
		m.navigate(m.session.Jump(m.session.Len() - 1))
	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.LineDown(m.viewport.Height)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.LineUp(m.viewport.Height)
	case key.Matches(msg, m.keys.Toggle):
		m.session.Toggle()
		if m.session.Running() {
			m.statusLine = "Timer running."
		} else {
			m.statusLine = "Timer paused."
		}
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.statusLine = "Timers reset."
	case key.Matches(msg, m.keys.Grow):
		m.session.Grow()
		m.refreshBody()
		m.statusLine = fmt.Sprintf("Font size %d.", m.session.Style().FontSize)
	case key.Matches(msg, m.keys.Shrink):
		m.session.Shrink()
		m.refreshBody()
		m.statusLine = fmt.Sprintf("Font size %d.", m.session.Style().FontSize)
	case key.Matches(msg, m.keys.AutoAdvance):
		m.session.SetAutoAdvance(!m.session.AutoAdvanceEnabled())
		m.statusLine = fmt.Sprintf("Auto-advance %s.", onOff(m.session.AutoAdvanceEnabled()))
	case key.Matches(msg, m.keys.Record):
		return m.toggleRecording()
	case key.Matches(msg, m.keys.Reload):
		if m.path == "" {
			return m, nil
		}
		m.loading = true
		m.statusLine = fmt.Sprintf("Reloading %s...", filepath.Base(m.path))
		m.errorLine = ""
		return m, m.loadScriptCmd(m.path)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
	}
	return m, nil
}

func (m *Model) navigate(moved bool) {
	if !moved {
		return
	}
	m.refreshBody()
	m.viewport.GotoTop()
	m.statusLine = fmt.Sprintf("Section %d of %d", m.session.Index()+1, m.session.Len())
	m.errorLine = ""
}

func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if m.recorder == nil {
		m.errorLine = "Recording is not available."
		return m, nil
	}
	if m.starting || m.stopping {
		return m, nil
	}
	if m.recording {
		m.statusLine = "Saving recording..."
		return m, m.beginStop()
	}
	m.starting = true
	m.statusLine = "Starting recording..."
	m.errorLine = ""
	return m, m.startRecordingCmd()
}

func (m Model) handleScriptLoaded(msg scriptLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.path != m.path {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load %s: %v", filepath.Base(msg.path), msg.err)
		m.statusLine = ""
		return m, nil
	}

	for _, w := range msg.warnings {
		m.log.Warn("script line ignored", "path", msg.path, "line", w.Line, "kind", w.Kind.String(), "text", w.Text)
	}

	m.session.Load(msg.sections)
	m.refreshBody()
	m.viewport.GotoTop()
	m.errorLine = ""
	if len(msg.sections) == 0 {
		m.statusLine = "No content loaded."
	} else {
		m.statusLine = fmt.Sprintf("Loaded %d section%s.", len(msg.sections), plural(len(msg.sections)))
	}
	m.log.Info("script loaded", "path", msg.path, "sections", len(msg.sections), "warnings", len(msg.warnings))
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tick()}
	if m.session.AutoAdvance() {
		m.navigate(true)
	}
	if m.recording && !m.stopping && (m.recorder.Full() || m.recorder.Elapsed() >= m.maxDuration) {
		m.statusLine = "Recording limit reached, saving..."
		cmds = append(cmds, m.beginStop())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleRecordStarted(msg recordStartedMsg) (tea.Model, tea.Cmd) {
	m.starting = false
	if errors.Is(msg.err, capture.ErrAlreadyRecording) {
		// The recorder still owns a take; keep it stoppable.
		m.recording = true
		m.statusLine = fmt.Sprintf("Already recording from %s.", m.recorder.Device())
		return m, nil
	}
	if msg.err != nil {
		m.recording = false
		if errors.Is(msg.err, capture.ErrNoDevice) {
			m.errorLine = "No microphone detected."
		} else {
			m.errorLine = fmt.Sprintf("Recording failed: %v", msg.err)
		}
		m.statusLine = ""
		m.log.Error("capture start failed", "error", msg.err)
		return m, nil
	}
	m.recording = true
	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Recording from %s.", msg.device)
	return m, nil
}

func (m Model) handleRecordSaved(msg recordSavedMsg) (tea.Model, tea.Cmd) {
	m.recording = false
	m.stopping = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Save failed: %v", msg.err)
		m.statusLine = ""
		m.log.Error("capture save failed", "path", msg.path, "error", msg.err)
		return m, nil
	}
	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Saved %s", msg.path)
	return m, nil
}

func (m Model) loadScriptCmd(path string) tea.Cmd {
	return func() tea.Msg {
		sections, warnings, err := script.LoadFileWithWarnings(path)
		if err != nil {
			return scriptLoadedMsg{path: path, err: err}
		}
		return scriptLoadedMsg{path: path, sections: sections, warnings: warnings}
	}
}

func (m Model) startRecordingCmd() tea.Cmd {
	recorder := m.recorder
	ctx := m.ctx
	device := m.device
	maxDuration := m.maxDuration
	return func() tea.Msg {
		if err := recorder.Start(ctx, device, maxDuration); err != nil {
			return recordStartedMsg{err: err}
		}
		return recordStartedMsg{device: recorder.Device()}
	}
}

func (m *Model) beginStop() tea.Cmd {
	m.stopping = true
	return m.stopRecordingCmd()
}

// stopRecordingCmd names the file from the section on screen now and the
// time the capture began.
func (m Model) stopRecordingCmd() tea.Cmd {
	recorder := m.recorder
	manager := m.manager
	index := m.session.Index()
	return func() tea.Msg {
		started, ok := recorder.Started()
		if !ok {
			return recordSavedMsg{err: capture.ErrNotRecording}
		}
		path := manager.RecordingPath(index, started)
		return recordSavedMsg{path: path, err: recorder.StopAndSave(path)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	chrome := chromeHeight
	if m.help.ShowAll {
		chrome += 4
	}
	vh := height - chrome
	if vh < 3 {
		vh = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vh
	m.progress.Width = width - 20
	if m.progress.Width < 10 {
		m.progress.Width = 10
	}
	m.help.Width = width
	m.refreshBody()
}

func (m *Model) refreshBody() {
	current, ok := m.session.Current()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	style := m.session.Style()
	body := strings.TrimRight(current.Body, "\n")
	m.viewport.SetContent(bodyStyle(style, bodyWidth(m.width, style.FontSize)).Render(body))
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	current, ok := m.session.Current()
	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case !ok:
		b.WriteString("(no content loaded)\n")
	default:
		m.writeHeadings(&b, current)
		b.WriteString(m.viewport.View())
		b.WriteByte('\n')
		m.writeProgress(&b)
		m.writeTimers(&b)
	}

	if m.recording {
		b.WriteString(recordingStyle.Render("● REC " + session.FormatElapsed(m.recorder.Elapsed())))
		b.WriteByte('\n')
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.statusLine))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')

	return b.String()
}

func (m Model) writeHeadings(b *strings.Builder, s script.Section) {
	title := s.Title
	if title == "" {
		title = filepath.Base(m.path)
	}
	b.WriteString(titleStyle(m.session.Style()).Render(title))
	b.WriteByte('\n')
	if s.Subsection != "" {
		b.WriteString(subsectionStyle.Render(s.Subsection))
		b.WriteByte('\n')
	}
	if s.Category != "" {
		b.WriteString(categoryStyle.Render(s.Category))
		b.WriteByte('\n')
	}
	if s.SubCategory != "" {
		b.WriteString(subCategoryStyle.Render(s.SubCategory))
		b.WriteByte('\n')
	}
}

func (m Model) writeProgress(b *strings.Builder) {
	fmt.Fprintf(b, "%s Progress: %d/%d\n",
		m.progress.ViewAs(m.session.Progress()),
		m.session.Index()+1,
		m.session.Len(),
	)
}

func (m Model) writeTimers(b *strings.Builder) {
	line := fmt.Sprintf("Section %s  Overall %s",
		session.FormatElapsed(m.session.SectionElapsed()),
		session.FormatElapsed(m.session.OverallElapsed()),
	)
	b.WriteString(timerStyle.Render(line))

	if remaining, ok := m.session.Remaining(); ok {
		b.WriteString("  ")
		left := "Left " + session.FormatElapsed(remaining)
		if remaining < 0 {
			b.WriteString(overBudgetStyle.Render(left))
		} else {
			b.WriteString(timerStyle.Render(left))
		}
	}
	if !m.session.Running() {
		b.WriteString("  ")
		b.WriteString(pausedStyle.Render("PAUSED"))
	}
	if m.session.AutoAdvanceEnabled() {
		b.WriteString("  ")
		b.WriteString(timerStyle.Render("[auto]"))
	}
	b.WriteByte('\n')
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

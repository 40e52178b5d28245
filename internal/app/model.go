package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"scriptplay/internal/audio"
	"scriptplay/internal/config"
	"scriptplay/internal/loader"
	"scriptplay/internal/player"
	"scriptplay/internal/transcript"
	"scriptplay/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Model is the root bubbletea model for the player. It owns one session:
// the current transcript document, the active-segment cursor (via the
// tracker), the playback transport and the batch reconciler. Submitting a
// new batch resets all of it.
type Model struct {
	cfg config.Config

	// Session state
	rec       *loader.Reconciler
	tracker   *player.Tracker
	doc       *transcript.Document
	audioRef  *audio.Reference
	transport audio.Transport
	notices   []loader.Notice

	// Current batch
	scriptName string
	audioName  string
	loading    bool
	ticking    bool

	// Initial batch, submitted by Init
	initial []loader.Input

	// UI state
	selected int
	scroll   int
	follow   bool
	width    int
	height   int

	// Open-files prompt
	prompting bool
	promptBuf string

	// Test seam: overrides transport construction when set.
	makeTransport func(ref *audio.Reference) audio.Transport
}

// New creates a Model that will load the given inputs on start.
func New(cfg config.Config, initial []loader.Input) Model {
	return Model{
		cfg:     cfg,
		rec:     &loader.Reconciler{},
		tracker: player.NewTracker(),
		initial: initial,
		follow:  true,
	}
}

// Init submits the initial batch, if any.
func (m Model) Init() tea.Cmd {
	if len(m.initial) == 0 {
		return nil
	}
	inputs := m.initial
	return func() tea.Msg {
		return SubmitBatchMsg{Inputs: inputs}
	}
}

// resolveScriptCmd reads and parses the transcript input asynchronously.
func resolveScriptCmd(generation int, in loader.Input) tea.Cmd {
	return func() tea.Msg {
		data, err := in.Read()
		if err != nil {
			return ScriptResolvedMsg{Generation: generation, Err: fmt.Errorf("read %s: %w", in.Name, err)}
		}
		doc, err := transcript.Parse(data)
		return ScriptResolvedMsg{Generation: generation, Doc: doc, Err: err}
	}
}

// resolveAudioCmd prepares the audio input asynchronously.
func resolveAudioCmd(generation int, in loader.Input) tea.Cmd {
	return func() tea.Msg {
		ref, err := audio.Prepare(in.Path)
		return AudioResolvedMsg{Generation: generation, Ref: ref, Err: err}
	}
}

// tickCmd schedules the next playback time sample.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SubmitBatchMsg:
		return m, m.submitBatch(msg.Inputs)

	case ScriptResolvedMsg:
		fin := m.rec.ResolveScript(msg.Generation, msg.Doc, msg.Err)
		return m, m.applyFinalization(fin)

	case AudioResolvedMsg:
		fin := m.rec.ResolveAudio(msg.Generation, msg.Ref, msg.Err)
		return m, m.applyFinalization(fin)

	case TickMsg:
		if m.transport == nil {
			m.ticking = false
			return m, nil
		}
		if tr, ok := m.tracker.Sample(m.transport.Position()); ok {
			m.onTransition(tr)
		}
		return m, tickCmd(m.cfg.TickInterval())
	}

	return m, nil
}

// submitBatch starts a new load, discarding the previous session state
// before any further sample can be processed.
func (m *Model) submitBatch(inputs []loader.Input) tea.Cmd {
	if m.transport != nil {
		m.transport.Pause()
	}
	sub := m.rec.Submit(inputs)

	m.doc = nil
	m.audioRef = nil
	m.transport = nil
	m.tracker.SetSegments(nil)
	m.notices = sub.Notices
	m.selected = 0
	m.scroll = 0
	m.follow = true
	m.scriptName = ""
	m.audioName = ""

	var cmds []tea.Cmd
	if sub.Script != nil {
		m.scriptName = sub.Script.Name
		cmds = append(cmds, resolveScriptCmd(sub.Generation, *sub.Script))
	}
	if sub.Audio != nil {
		m.audioName = sub.Audio.Name
		cmds = append(cmds, resolveAudioCmd(sub.Generation, *sub.Audio))
	}
	m.loading = len(cmds) > 0
	return tea.Batch(cmds...)
}

// applyFinalization installs the batch outcome: segments, audio reference
// and notices. A nil finalization (stale or still pending) is a no-op.
func (m *Model) applyFinalization(fin *loader.Finalization) tea.Cmd {
	if fin == nil {
		return nil
	}
	m.loading = false
	m.notices = append(m.notices, fin.Notices...)

	if fin.Doc != nil {
		m.doc = fin.Doc
		m.tracker.SetSegments(fin.Doc.Segments)
	}
	if fin.Audio != nil {
		m.audioRef = fin.Audio
	}

	if fin.Doc == nil && fin.Audio == nil {
		return nil
	}

	m.transport = m.newTransport(fin.Audio)
	if m.cfg.Autoplay {
		m.transport.Play()
	}

	if m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd(m.cfg.TickInterval())
}

func (m *Model) newTransport(ref *audio.Reference) audio.Transport {
	if m.makeTransport != nil {
		return m.makeTransport(ref)
	}
	if ref != nil && m.cfg.Transport != config.TransportClock {
		return audio.NewPlayer(ref.Path)
	}
	return audio.NewClock()
}

// onTransition reacts to an active-segment change: keep the highlight in
// view while following.
func (m *Model) onTransition(tr player.Transition) {
	if !m.follow || tr.Next == player.None {
		return
	}
	m.scrollTo(tr.Next)
	m.selected = tr.Next
}

// scrollTo centers the given segment in the panel when possible.
func (m *Model) scrollTo(index int) {
	visible := m.visibleLines() - 1 // panel header
	m.scroll = index - visible/2
	if max := m.maxScroll(); m.scroll > max {
		m.scroll = max
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// seekToSegment issues the seek command for a clicked segment: jump the
// transport to the segment start, then play.
func (m *Model) seekToSegment(index int) {
	if m.doc == nil || m.transport == nil || index < 0 || index >= len(m.doc.Segments) {
		return
	}
	m.transport.SeekTo(m.doc.Segments[index].StartSeconds())
	m.transport.Play()
	if tr, ok := m.tracker.Sample(m.transport.Position()); ok {
		m.onTransition(tr)
	}
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		if m.transport != nil {
			m.transport.Pause()
		}
		return m, tea.Quit

	case KeySpace:
		if m.transport == nil {
			return m, nil
		}
		if m.transport.Playing() {
			m.transport.Pause()
		} else {
			m.transport.Play()
		}
		return m, nil

	case KeyJ, KeyDown:
		if n := m.segmentCount(); n > 0 && m.selected < n-1 {
			m.selected++
			m.follow = false
			m.keepSelectionVisible()
		}
		return m, nil

	case KeyK, KeyUp:
		if m.segmentCount() > 0 && m.selected > 0 {
			m.selected--
			m.follow = false
			m.keepSelectionVisible()
		}
		return m, nil

	case KeyTop:
		if m.segmentCount() > 0 {
			m.selected = 0
			m.follow = false
			m.keepSelectionVisible()
		}
		return m, nil

	case KeyBottom:
		if n := m.segmentCount(); n > 0 {
			m.selected = n - 1
			m.follow = false
			m.keepSelectionVisible()
		}
		return m, nil

	case KeyEnter:
		m.seekToSegment(m.selected)
		return m, nil

	case KeyLeft:
		if m.transport != nil {
			m.transport.SeekTo(m.transport.Position() - seekStepSeconds)
			if tr, ok := m.tracker.Sample(m.transport.Position()); ok {
				m.onTransition(tr)
			}
		}
		return m, nil

	case KeyRight:
		if m.transport != nil {
			m.transport.SeekTo(m.transport.Position() + seekStepSeconds)
			if tr, ok := m.tracker.Sample(m.transport.Position()); ok {
				m.onTransition(tr)
			}
		}
		return m, nil

	case KeyFollow:
		m.follow = true
		if cur := m.tracker.Cursor(); cur != player.None {
			m.scrollTo(cur)
			m.selected = cur
		}
		return m, nil

	case KeyOpen, KeyOpenUpper:
		m.prompting = true
		m.promptBuf = ""
		return m, nil
	}

	return m, nil
}

// handlePromptKey edits the open-files prompt. Enter submits the typed
// paths as a new batch, superseding whatever is loaded or in flight.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompting = false
		m.promptBuf = ""
		return m, nil

	case tea.KeyBackspace:
		if len(m.promptBuf) > 0 {
			runes := []rune(m.promptBuf)
			m.promptBuf = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyEnter:
		paths := strings.Fields(m.promptBuf)
		m.prompting = false
		m.promptBuf = ""
		if len(paths) == 0 {
			return m, nil
		}
		inputs := make([]loader.Input, 0, len(paths))
		for _, p := range paths {
			inputs = append(inputs, loader.FileInput(p))
		}
		return m, func() tea.Msg { return SubmitBatchMsg{Inputs: inputs} }

	case tea.KeySpace:
		m.promptBuf += " "
		return m, nil

	case tea.KeyRunes:
		m.promptBuf += string(msg.Runes)
		return m, nil
	}

	return m, nil
}

func (m Model) segmentCount() int {
	if m.doc == nil {
		return 0
	}
	return len(m.doc.Segments)
}

func (m *Model) keepSelectionVisible() {
	visible := m.visibleLines() - 1
	if m.selected < m.scroll {
		m.scroll = m.selected
	}
	if m.selected >= m.scroll+visible {
		m.scroll = m.selected - visible + 1
	}
}

func (m Model) maxScroll() int {
	visible := m.visibleLines() - 1
	if n := m.segmentCount(); n > visible {
		return n - visible
	}
	return 0
}

func (m Model) visibleLines() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + status(1) + dividers(2) + notices(2) + footer(1) + padding
	reserved := 8
	return max(5, m.height-reserved)
}

// View renders the full player.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderTranscriptPanel(m.width, m.visibleLines()))
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if notices := m.renderNotices(); notices != "" {
		sections = append(sections, notices)
	}

	if m.prompting {
		sections = append(sections, ui.PromptStyle.Render("Open files: ")+m.promptBuf+"▌")
	}

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("SCRIPTPLAY")

	var files []string
	if m.scriptName != "" {
		files = append(files, m.scriptName)
	}
	if m.audioName != "" {
		files = append(files, m.audioName)
	}

	var info string
	if len(files) > 0 {
		info = ui.DimStyle.Render(" — " + strings.Join(files, " + "))
	}

	var hash string
	if m.audioRef != nil {
		hash = ui.DimStyle.Render(" [" + m.audioRef.ShortHash() + "]")
	}

	return title + info + hash
}

func (m Model) renderStatusBar() string {
	var dot string
	if m.transport != nil && m.transport.Playing() {
		dot = ui.PlayingDotStyle.Render("▶ PLAYING")
	} else if m.transport != nil {
		dot = ui.PausedDotStyle.Render("❚❚ PAUSED")
	} else {
		dot = ui.PausedDotStyle.Render("○ EMPTY")
	}

	var position string
	if m.transport != nil {
		position = "  " + ui.TimecodeStyle.Render(formatTime(m.transport.Position()))
	}

	var active string
	if cur := m.tracker.Cursor(); cur != player.None {
		active = "  " + ui.DimStyle.Render(fmt.Sprintf("segment %d/%d", cur+1, m.segmentCount()))
	}

	var loading string
	if m.loading {
		loading = "  " + ui.WarningStyle.Render("⟳ loading")
	}

	return dot + position + active + loading
}

func (m Model) renderTranscriptPanel(width, height int) string {
	var badge string
	if m.follow {
		badge = ui.LiveBadgeStyle.Render(" SYNC")
	} else {
		badge = ui.ScrollBadgeStyle.Render(" SCROLL")
	}
	header := ui.PanelTitleStyle.Render(fmt.Sprintf("TRANSCRIPT (%d)", m.segmentCount())) + badge

	lines := []string{header}

	switch {
	case m.loading && m.doc == nil:
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  Loading batch..."))

	case m.doc == nil && m.audioRef != nil:
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  No transcript; audio plays without synchronization."))

	case m.doc == nil:
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  No batch loaded. Press o to open a transcript and audio file."))

	case len(m.doc.Segments) == 0:
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  Transcript is empty."))

	default:
		cursor := m.tracker.Cursor()
		visible := height - 1
		end := m.scroll + visible
		if end > len(m.doc.Segments) {
			end = len(m.doc.Segments)
		}
		for i := m.scroll; i < end; i++ {
			lines = append(lines, m.renderSegmentLine(i, cursor, width))
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderSegmentLine(i, cursor, width int) string {
	seg := m.doc.Segments[i]

	marker := "  "
	if i == m.selected {
		marker = ui.SelectedStyle.Render("> ")
	}

	ts := ui.TimestampStyle.Render("[" + formatTime(seg.StartSeconds()) + "]")
	text := truncateToWidth(seg.Text, max(10, width-14))

	if i == cursor {
		return marker + ts + " " + ui.ActiveSegmentStyle.Render(text)
	}
	return marker + ts + " " + text
}

func (m Model) renderNotices() string {
	if len(m.notices) == 0 {
		return ""
	}

	// Show the most recent two; older ones scroll away.
	start := 0
	if len(m.notices) > 2 {
		start = len(m.notices) - 2
	}

	var lines []string
	for _, n := range m.notices[start:] {
		if n.Severity == loader.SeverityError {
			lines = append(lines, ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(n.Message))
		} else {
			lines = append(lines, ui.WarningStyle.Render("Warning: "+n.Message))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	var parts []string

	if m.transport != nil {
		if m.transport.Playing() {
			parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Pause"))
		} else {
			parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Play"))
		}
		parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Seek"))
		parts = append(parts, ui.FooterKeyStyle.Render("←→")+ui.FooterDescStyle.Render(" ±5s"))
		parts = append(parts, ui.FooterKeyStyle.Render("j/k")+ui.FooterDescStyle.Render(" Nav"))
		parts = append(parts, ui.FooterKeyStyle.Render("f")+ui.FooterDescStyle.Render(" Follow"))
	}
	parts = append(parts, ui.FooterKeyStyle.Render("o")+ui.FooterDescStyle.Render(" Open"))
	parts = append(parts, ui.FooterKeyStyle.Render("q")+ui.FooterDescStyle.Render(" Quit"))

	return strings.Join(parts, "  ")
}

// Helpers

func formatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

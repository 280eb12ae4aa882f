// Package docview implements the document session view: for one
// document it fetches the binary, tracks the page cursor, lazily loads
// the derived artifacts (summary, clause list) and drives the chat
// transcript. All remote completions arrive as messages on the
// program's event loop; state mutates only inside Update.
package docview

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nttrung2406/readlaw-cli/internal/api"
	"github.com/nttrung2406/readlaw-cli/internal/pdfinfo"
)

// Gateway is the slice of the remote API the session view depends on.
// *api.Client satisfies it.
type Gateway interface {
	FetchBinary(ctx context.Context, filename, id string) ([]byte, error)
	GetSummary(ctx context.Context, filename, id string) (string, error)
	ExtractClauses(ctx context.Context, filename, id string) ([]api.Clause, error)
	Chat(ctx context.Context, filename, id, query string) (string, error)
}

// Tab selects which artifact pane is visible.
type Tab int

const (
	TabSummary Tab = iota
	TabClauses
	TabChat
)

// phase is the lifecycle of the whole session instance.
type phase int

const (
	phaseInitializing phase = iota
	phaseReady
	phaseNotFound // terminal; nothing else can render without the binary
)

// artifactPhase is the lifecycle of one lazily fetched artifact.
// Never-fetched and failed are distinct states: tab selection only
// fetches from idle, while retry is an explicit keypress from failed.
type artifactPhase int

const (
	artifactIdle artifactPhase = iota
	artifactFetching
	artifactReady
	artifactFailed
)

// TranscriptError marks a failed chat turn. The query is not appended
// to the transcript on failure, so the visible log never records an
// unanswered question.
type TranscriptError struct {
	Err error
}

func (e *TranscriptError) Error() string {
	return "chat turn failed: " + e.Err.Error()
}

func (e *TranscriptError) Unwrap() error {
	return e.Err
}

// Completion messages. Each carries the generation it was issued for;
// results from a superseded generation are discarded, so a fetch that
// resolves after the view moved on is a guaranteed no-op.
type binaryMsg struct {
	gen   int
	data  []byte
	pages int // 0 when the payload would not parse
	err   error
}

type summaryMsg struct {
	gen  int
	text string
	err  error
}

type clausesMsg struct {
	gen     int
	clauses []api.Clause
	err     error
}

type chatMsg struct {
	gen   int
	query string
	reply string
	err   error
}

// Model is the session view state for one mounted document.
type Model struct {
	gw       Gateway
	filename string
	id       string
	labels   Labels

	// gen identifies the current mount. Reloading bumps it, and
	// completions carrying an older gen are discarded on arrival.
	gen      int
	phase    phase
	fatalErr error

	binary     []byte
	page       int
	totalPages int // 0 means not yet known

	tab Tab

	summaryPhase artifactPhase
	summary      string
	summaryErr   error

	clausesPhase artifactPhase
	clauses      []api.Clause
	clausesErr   error

	transcript  []api.ChatMessage
	chatLoading bool
	chatErr     error

	input textinput.Model
	spin  spinner.Model

	width  int
	height int

	quitting bool
}

// New creates the session view for one document. The transcript always
// starts empty; nothing about a previous session instance survives.
func New(gw Gateway, filename, id string, labels Labels) Model {
	input := textinput.New()
	input.Placeholder = labels.ChatPlaceholder
	input.CharLimit = 512

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		gw:       gw,
		filename: filename,
		id:       id,
		labels:   labels,
		gen:      1,
		phase:    phaseInitializing,
		page:     1,
		input:    input,
		spin:     spin,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchBinary())
}

func (m Model) fetchBinary() tea.Cmd {
	gen, gw, filename, id := m.gen, m.gw, m.filename, m.id
	return func() tea.Msg {
		data, err := gw.FetchBinary(context.Background(), filename, id)
		if err != nil {
			return binaryMsg{gen: gen, err: err}
		}
		pages, err := pdfinfo.PageCount(data)
		if err != nil {
			pages = 0
		}
		return binaryMsg{gen: gen, data: data, pages: pages}
	}
}

func (m Model) fetchSummary() tea.Cmd {
	gen, gw, filename, id := m.gen, m.gw, m.filename, m.id
	return func() tea.Msg {
		text, err := gw.GetSummary(context.Background(), filename, id)
		return summaryMsg{gen: gen, text: text, err: err}
	}
}

func (m Model) fetchClauses() tea.Cmd {
	gen, gw, filename, id := m.gen, m.gw, m.filename, m.id
	return func() tea.Msg {
		clauses, err := gw.ExtractClauses(context.Background(), filename, id)
		return clausesMsg{gen: gen, clauses: clauses, err: err}
	}
}

func (m Model) sendChat(query string) tea.Cmd {
	gen, gw, filename, id := m.gen, m.gw, m.filename, m.id
	return func() tea.Msg {
		reply, err := gw.Chat(context.Background(), filename, id, query)
		return chatMsg{gen: gen, query: query, reply: reply, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case binaryMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.phase = phaseNotFound
			m.fatalErr = msg.err
			return m, nil
		}
		m.phase = phaseReady
		m.binary = msg.data
		m.totalPages = msg.pages
		m.page = 1
		// The session opens onto the Summary tab; that counts as its
		// first selection, so its fetch starts immediately.
		if m.tab == TabSummary && m.summaryPhase == artifactIdle {
			m.summaryPhase = artifactFetching
			return m, m.fetchSummary()
		}
		return m, nil

	case summaryMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.summaryPhase = artifactFailed
			m.summaryErr = msg.err
			return m, nil
		}
		m.summaryPhase = artifactReady
		m.summary = msg.text
		m.summaryErr = nil
		return m, nil

	case clausesMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.clausesPhase = artifactFailed
			m.clausesErr = msg.err
			return m, nil
		}
		m.clausesPhase = artifactReady
		m.clauses = msg.clauses
		m.clausesErr = nil
		return m, nil

	case chatMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.chatLoading = false
		if msg.err != nil {
			m.chatErr = &TranscriptError{Err: msg.err}
			return m, nil
		}
		// One atomic append: the query never appears without its answer.
		m.transcript = append(m.transcript,
			api.ChatMessage{Role: api.RoleUser, Content: msg.query},
			api.ChatMessage{Role: api.RoleAssistant, Content: msg.reply},
		)
		m.chatErr = nil
		m.input.Reset()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.phase == phaseNotFound {
		if key == "q" || key == "esc" || key == "enter" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	if m.phase != phaseReady {
		return m, nil
	}

	typing := m.tab == TabChat && m.input.Focused()

	switch key {
	case "ctrl+r":
		return m.reload()
	case "tab":
		return m.selectTab((m.tab + 1) % 3)
	case "shift+tab":
		return m.selectTab((m.tab + 2) % 3)
	case "pgup":
		return m.prevPage(), nil
	case "pgdown":
		return m.nextPage(), nil
	case "enter":
		if m.tab == TabChat {
			return m.submitChat()
		}
		return m, nil
	}

	if !typing {
		switch key {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "left":
			return m.prevPage(), nil
		case "right":
			return m.nextPage(), nil
		case "1":
			return m.selectTab(TabSummary)
		case "2":
			return m.selectTab(TabClauses)
		case "3":
			return m.selectTab(TabChat)
		case "r":
			return m.retryArtifact()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// reload remounts the session: every artifact and the transcript are
// discarded and the document is fetched again from scratch. Bumping gen
// makes any completion still in flight from the previous mount stale,
// so it is dropped when it arrives.
func (m Model) reload() (Model, tea.Cmd) {
	m.gen++
	m.phase = phaseInitializing
	m.fatalErr = nil
	m.binary = nil
	m.page = 1
	m.totalPages = 0
	m.tab = TabSummary
	m.summaryPhase = artifactIdle
	m.summary = ""
	m.summaryErr = nil
	m.clausesPhase = artifactIdle
	m.clauses = nil
	m.clausesErr = nil
	m.transcript = nil
	m.chatLoading = false
	m.chatErr = nil
	m.input.Reset()
	m.input.Blur()
	return m, m.fetchBinary()
}

// selectTab switches the visible pane. The first visit to Summary or
// Clauses triggers its fetch; any later visit reuses whatever the
// first attempt produced, success or failure. Chat never fetches.
func (m Model) selectTab(t Tab) (Model, tea.Cmd) {
	m.tab = t

	var cmd tea.Cmd
	switch t {
	case TabSummary:
		if m.summaryPhase == artifactIdle {
			m.summaryPhase = artifactFetching
			cmd = m.fetchSummary()
		}
	case TabClauses:
		if m.clausesPhase == artifactIdle {
			m.clausesPhase = artifactFetching
			cmd = m.fetchClauses()
		}
	}

	if t == TabChat {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m, cmd
}

// retryArtifact re-fetches the current tab's artifact after a failure.
// This is a deliberate user action; tab selection alone never retries.
func (m Model) retryArtifact() (Model, tea.Cmd) {
	switch m.tab {
	case TabSummary:
		if m.summaryPhase == artifactFailed {
			m.summaryPhase = artifactFetching
			m.summaryErr = nil
			return m, m.fetchSummary()
		}
	case TabClauses:
		if m.clausesPhase == artifactFailed {
			m.clausesPhase = artifactFetching
			m.clausesErr = nil
			return m, m.fetchClauses()
		}
	}
	return m, nil
}

// prevPage and nextPage clamp the cursor to [1, totalPages]; at the
// bounds they are no-ops. They never touch the network.
func (m Model) prevPage() Model {
	if m.page > 1 {
		m.page--
	}
	return m
}

func (m Model) nextPage() Model {
	if m.totalPages > 0 && m.page < m.totalPages {
		m.page++
	}
	return m
}

// submitChat dispatches one chat turn. Empty and whitespace-only
// queries are no-ops, and only one turn may be in flight at a time;
// concurrent submissions are dropped, not queued.
func (m Model) submitChat() (Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" || m.chatLoading {
		return m, nil
	}
	m.chatLoading = true
	m.chatErr = nil
	return m, m.sendChat(query)
}

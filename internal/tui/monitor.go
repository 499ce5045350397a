package tui

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/client"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type connState int

const (
	stateConnecting connState = iota
	stateConnected
	stateDisconnected
)

// monitorModel renders the progress of one sync connection.
type monitorModel struct {
	ctx    context.Context
	client client.Client
	build  models.BuildInfo
	now    func() time.Time

	spinner       spinner.Model
	state         connState
	showBuildInfo bool

	clientID     string
	purgeID      string
	mode         string
	spider       *models.SpiderProgress
	remaining    int64
	pages        int
	sets         map[models.SyncEntityType]int
	deletes      int
	repositories int
	orgs         int
	lastPage     time.Time
	rateLimited  time.Time
	err          error
}

func newMonitorModel(ctx context.Context, c client.Client, build models.BuildInfo) monitorModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return monitorModel{
		ctx:     ctx,
		client:  c,
		build:   build,
		now:     time.Now,
		spinner: s,
		sets:    map[models.SyncEntityType]int{},
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.connect())
}

// connect starts the client and returns the command waiting for its first
// event.
func (m monitorModel) connect() tea.Cmd {
	events := make(chan client.Event)
	go func() {
		defer close(events)
		// the error also arrives as a Disconnected event
		_ = m.client.Run(m.ctx, events)
	}()
	return waitForEvent(events)
}

func waitForEvent(events <-chan client.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{event: e, events: events}
	}
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case eventMsg:
		m = m.apply(msg.event)
		if _, done := msg.event.(client.Disconnected); done {
			return m, nil
		}
		return m, waitForEvent(msg.events)
	}
	return m, nil
}

func (m monitorModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = !m.showBuildInfo
	case key.Matches(msg, keys.esc):
		m.showBuildInfo = false
	case key.Matches(msg, keys.reconnect):
		if m.state != stateDisconnected {
			return m, nil
		}
		m.state = stateConnecting
		m.err = nil
		return m, m.connect()
	}
	return m, nil
}

func (m monitorModel) apply(event client.Event) monitorModel {
	switch e := event.(type) {
	case client.Connected:
		m.state = stateConnected
		m.clientID = e.ClientID
	case client.Hello:
		m.purgeID = e.PurgeIdentifier
		if e.SpiderProgress != nil {
			m.spider = e.SpiderProgress
		}
	case client.Subscription:
		m.mode = e.Mode
	case client.RateLimited:
		m.rateLimited = e.Until
	case client.Page:
		m.pages++
		m.remaining = e.Remaining
		m.lastPage = m.now()
		m.repositories = len(e.Versions.Repositories)
		m.orgs = len(e.Versions.Organizations)
		if e.SpiderProgress != nil {
			m.spider = e.SpiderProgress
		}
		for _, entry := range e.Logs {
			if entry.Action == models.SyncLogActionDelete {
				m.deletes++
				continue
			}
			m.sets[entry.Entity]++
		}
	case client.Disconnected:
		m.state = stateDisconnected
		m.err = e.Err
	}
	return m
}

func (m monitorModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.build)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Connection:  %s\n", m.stateView())
	fmt.Fprintf(&b, "Client:      %s\n", valueOrDash(m.clientID))
	fmt.Fprintf(&b, "Plan:        %s\n", valueOrDash(m.mode))
	fmt.Fprintf(&b, "Purge id:    %s\n", valueOrDash(m.purgeID))
	if !m.rateLimited.IsZero() && m.rateLimited.After(m.now()) {
		b.WriteString(warnStyle.Render(fmt.Sprintf("GitHub rate limit until %s", m.rateLimited.Local().Format(time.Kitchen))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.spider != nil {
		fmt.Fprintf(&b, "%s\n%s\n", m.spider.Summary, renderBar(m.spider.Progress))
	} else {
		b.WriteString("Spider:      -\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Pages:       %d\n", m.pages)
	fmt.Fprintf(&b, "Remaining:   %d\n", m.remaining)
	fmt.Fprintf(&b, "Scopes:      %d repositories, %d organizations\n", m.repositories, m.orgs)
	if !m.lastPage.IsZero() {
		fmt.Fprintf(&b, "Last page:   %s ago\n", m.now().Sub(m.lastPage).Truncate(time.Second))
	}

	if len(m.sets) > 0 || m.deletes > 0 {
		b.WriteString("\n")
		for _, entity := range slices.Sorted(maps.Keys(m.sets)) {
			fmt.Fprintf(&b, "  %-16s %d\n", entity, m.sets[entity])
		}
		if m.deletes > 0 {
			fmt.Fprintf(&b, "  %-16s %d\n", "deleted", m.deletes)
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
	}

	hotKeys := "v: build info   q: quit"
	if m.state == stateDisconnected {
		hotKeys = "r: reconnect   " + hotKeys
	}
	return renderPage("SHIP SYNC MONITOR", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m monitorModel) stateView() string {
	switch m.state {
	case stateConnecting:
		return m.spinner.View() + " connecting"
	case stateConnected:
		if m.remaining > 0 {
			return m.spinner.View() + " syncing"
		}
		return "live"
	default:
		return "disconnected"
	}
}

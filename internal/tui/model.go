package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"go-file-manager/internal/event"
	"go-file-manager/internal/model"
	"go-file-manager/internal/service"
	"go-file-manager/internal/storage"
	"go-file-manager/internal/view"
)

// Options configure a Model. Events is usually a bus subscription; the model
// refreshes whenever something arrives on it.
type Options struct {
	Events      <-chan event.Event
	DownloadDir string
}

type Model struct {
	svc         *service.EntryService
	events      <-chan event.Event
	downloadDir string
	ctx         context.Context

	width  int
	height int

	keys   keyMap
	help   help.Model
	gauge  progress.Model
	search textinput.Model

	query     view.Query
	page      view.Page
	cursor    int
	searching bool

	modal *modal

	status    string
	statusErr bool
}

// eventMsg carries a store change into the update loop.
type eventMsg struct {
	event event.Event
}

type eventsClosedMsg struct{}

func New(svc *service.EntryService, opts Options) *Model {
	search := textinput.New()
	search.Placeholder = "Search files..."
	search.Prompt = "🔍 "
	search.CharLimit = model.MaxNameLength

	downloadDir := opts.DownloadDir
	if downloadDir == "" {
		downloadDir = "."
	}

	m := &Model{
		svc:         svc,
		events:      opts.Events,
		downloadDir: downloadDir,
		ctx:         context.Background(),
		keys:        defaultKeyMap(),
		help:        help.New(),
		gauge:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		search:      search,
		query:       view.NewQuery("all", "", "name", "grid"),
	}
	m.keys.forSection(false)
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}

	events := m.events
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: e}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case eventMsg:
		slog.Debug("store changed", "type", msg.event.Type)
		if msg.event.Type == event.TypePreviewReady {
			if entry, ok := msg.event.Payload.(model.Entry); ok {
				m.setStatus("Preview ready: "+entry.Name, false)
			}
		}
		m.refresh()
		return m, m.waitForEvent()
	case eventsClosedMsg:
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	if m.modal != nil {
		return m, m.updateModal(msg)
	}

	if m.searching {
		return m, m.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	return m, m.handleKey(keyMsg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.All):
		m.switchSection(model.SectionAll)
	case key.Matches(msg, m.keys.Recent):
		m.switchSection(model.SectionRecent)
	case key.Matches(msg, m.keys.Trash):
		m.switchSection(model.SectionTrash)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m.search.Focus()
	case key.Matches(msg, m.keys.Sort):
		m.query.Sort = nextSortKey(m.query.Sort)
		m.refresh()
	case key.Matches(msg, m.keys.Mode):
		if m.query.Mode == model.ViewGrid {
			m.query.Mode = model.ViewList
		} else {
			m.query.Mode = model.ViewGrid
		}
		m.refresh()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Upload):
		return m.openModal(newUploadModal())
	case key.Matches(msg, m.keys.Folder):
		return m.openModal(newFolderModal())
	case key.Matches(msg, m.keys.Rename):
		if item, ok := m.selected(); ok {
			return m.openModal(newRenameModal(item))
		}
	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selected(); ok {
			m.deleteEntry(item)
		}
	case key.Matches(msg, m.keys.Restore):
		if item, ok := m.selected(); ok {
			m.restoreEntry(item)
		}
	case key.Matches(msg, m.keys.Purge):
		if item, ok := m.selected(); ok {
			return m.openModal(newPurgeModal(item))
		}
	case key.Matches(msg, m.keys.Download):
		if item, ok := m.selected(); ok {
			m.download(item)
		}
	}

	return nil
}

// updateSearch filters live while typing. Enter keeps the term, Esc clears it.
func (m *Model) updateSearch(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			return nil
		case tea.KeyEsc:
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.query.Search = ""
			m.cursor = 0
			m.refresh()
			return nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.query.Search {
		m.query.Search = m.search.Value()
		m.cursor = 0
		m.refresh()
	}
	return cmd
}

func (m *Model) switchSection(section model.Section) {
	m.query.Section = section
	m.keys.forSection(section == model.SectionTrash)
	m.cursor = 0
	m.refresh()
}

func nextSortKey(current model.SortKey) model.SortKey {
	i := slices.Index(model.SortKeys, current)
	return model.SortKeys[(i+1)%len(model.SortKeys)]
}

func (m *Model) moveCursor(delta int) {
	if len(m.page.Items) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(len(m.page.Items)-1, m.cursor+delta))
}

func (m *Model) selected() (view.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.page.Items) {
		return view.Item{}, false
	}
	return m.page.Items[m.cursor], true
}

// refresh re-runs the display pipeline and keeps the cursor on the same
// entry when it is still visible.
func (m *Model) refresh() {
	var selectedID string
	if item, ok := m.selected(); ok {
		selectedID = item.ID
	}

	page, err := m.svc.View(m.ctx, m.query, nil)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.page = page

	if i := slices.IndexFunc(page.Items, func(item view.Item) bool { return item.ID == selectedID }); i >= 0 {
		m.cursor = i
	}
	m.moveCursor(0)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	if isErr {
		slog.Warn("tui action failed", "error", text)
	}
}

func (m *Model) upload(path string) {
	src, err := service.NewPathSource(path)
	if err != nil {
		m.setStatus(fmt.Sprintf("Cannot upload %s: %v", path, err), true)
		return
	}

	item, err := m.svc.Upload(m.ctx, src)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}

	if item.Pending {
		m.setStatus("Reading "+item.Name+"...", false)
	} else {
		m.setStatus("Uploaded "+item.Name, false)
	}
	m.refresh()
}

func (m *Model) createFolder(name string) {
	folder, created, err := m.svc.CreateFolder(m.ctx, name)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if created {
		m.setStatus("Created folder "+folder.Name, false)
	}
	m.refresh()
}

func (m *Model) rename(item view.Item, base string) {
	renamed, changed, err := m.svc.Rename(m.ctx, item.ID, base)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if changed {
		m.setStatus("Renamed to "+renamed.Name, false)
	}
	m.refresh()
}

func (m *Model) deleteEntry(item view.Item) {
	if _, err := m.svc.Delete(m.ctx, item.ID); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("Moved "+item.Name+" to trash", false)
	m.refresh()
}

func (m *Model) restoreEntry(item view.Item) {
	if _, err := m.svc.Restore(m.ctx, item.ID); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("Restored "+item.Name, false)
	m.refresh()
}

func (m *Model) purge(item view.Item, confirmed bool) {
	result, err := m.svc.Purge(m.ctx, item.ID, service.Answer(confirmed))
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if result.Changed {
		m.setStatus("Deleted "+item.Name+" forever", false)
	}
	m.refresh()
}

// download saves the preview bytes into the download directory. Entries
// without bytes only report the simulated download.
func (m *Model) download(item view.Item) {
	result, found, err := m.svc.Download(m.ctx, item.ID)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if !found {
		return
	}

	if result.Preview == nil {
		m.setStatus(result.Message, false)
		return
	}

	downloads, err := storage.New(m.downloadDir)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}

	target, err := downloads.Save(result.Entry.Name, result.Preview.Data)
	if err != nil {
		m.setStatus(fmt.Sprintf("Cannot save %s: %v", result.Entry.Name, err), true)
		return
	}
	m.setStatus("Saved "+target, false)
}

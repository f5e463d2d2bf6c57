package tui

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-file-manager/internal/event"
	"go-file-manager/internal/model"
	"go-file-manager/internal/preview"
	"go-file-manager/internal/service"
	"go-file-manager/internal/store"
)

func newTestModel(t *testing.T) (*Model, *service.EntryService) {
	t.Helper()

	st, err := store.New(8)
	require.NoError(t, err)

	loop := store.NewLoop(st)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})

	svc := service.NewEntryService(loop, preview.NewGenerator(32), event.NewBus())
	return New(svc, Options{DownloadDir: t.TempDir()}), svc
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

func names(m *Model) []string {
	out := make([]string, 0, len(m.page.Items))
	for _, item := range m.page.Items {
		out = append(out, item.Name)
	}
	return out
}

func seed(t *testing.T, svc *service.EntryService, files ...string) {
	t.Helper()

	for _, name := range files {
		_, err := svc.Upload(context.Background(), service.NewMemorySource(name, 10, nil))
		require.NoError(t, err)
	}
}

func TestModel_SectionsAndSoftDelete(t *testing.T) {
	m, svc := newTestModel(t)
	seed(t, svc, "notes.txt")
	m.refresh()
	require.Equal(t, []string{"notes.txt"}, names(m))

	press(m, "d")
	assert.Empty(t, names(m))
	assert.True(t, m.page.Empty)

	press(m, "3")
	assert.Equal(t, model.SectionTrash, m.query.Section)
	assert.Equal(t, "Trash", m.page.Title)
	assert.Equal(t, []string{"notes.txt"}, names(m))

	press(m, "R")
	assert.Empty(t, names(m))

	press(m, "2")
	assert.Equal(t, []string{"notes.txt"}, names(m))

	press(m, "1")
	assert.Equal(t, []string{"notes.txt"}, names(m))
}

func TestModel_SortAndModeCycle(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "s")
	assert.Equal(t, model.SortByDate, m.query.Sort)
	press(m, "s")
	assert.Equal(t, model.SortBySize, m.query.Sort)
	press(m, "s")
	assert.Equal(t, model.SortByName, m.query.Sort)

	press(m, "v")
	assert.Equal(t, model.ViewList, m.page.Mode)
	press(m, "v")
	assert.Equal(t, model.ViewGrid, m.page.Mode)
}

func TestModel_CursorStaysInBounds(t *testing.T) {
	m, svc := newTestModel(t)
	seed(t, svc, "a.txt", "b.txt")
	m.refresh()

	press(m, "j", "j", "j")
	assert.Equal(t, 1, m.cursor)
	press(m, "k", "k")
	assert.Equal(t, 0, m.cursor)
}

func TestModel_LiveSearch(t *testing.T) {
	m, svc := newTestModel(t)
	seed(t, svc, "report.txt", "photo.png", "Reply.doc")
	m.refresh()

	press(m, "/")
	require.True(t, m.searching)

	press(m, "r", "e")
	assert.Equal(t, "re", m.query.Search)
	assert.ElementsMatch(t, []string{"report.txt", "Reply.doc"}, names(m))

	// Keys that are bindings outside search are plain text here.
	press(m, "d")
	assert.Equal(t, "red", m.query.Search)
	assert.Empty(t, names(m))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Empty(t, m.query.Search)
	assert.Len(t, names(m), 3)

	press(m, "/", "p")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, "p", m.query.Search)
	assert.Equal(t, []string{"photo.png", "Reply.doc", "report.txt"}, names(m))
}

func TestModel_RenameModal(t *testing.T) {
	m, svc := newTestModel(t)
	seed(t, svc, "report.txt")
	m.refresh()

	press(m, "r")
	require.NotNil(t, m.modal)
	assert.Equal(t, modalRename, m.modal.kind)
	assert.Equal(t, "report", m.modal.value)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.modal)
	assert.Equal(t, []string{"report.txt"}, names(m))

	press(m, "r")
	m.modal.value = "summary"
	m.submitModal()
	assert.Nil(t, m.modal)
	assert.Equal(t, []string{"summary.txt"}, names(m))
	assert.Equal(t, "Renamed to summary.txt", m.status)
}

func TestModel_FolderModal(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "n")
	require.NotNil(t, m.modal)
	m.modal.value = "Projects"
	m.submitModal()

	require.Len(t, m.page.Items, 1)
	assert.Equal(t, "📁", m.page.Items[0].Glyph)
	assert.Equal(t, "0 Bytes", m.page.Items[0].SizeHuman)
}

func TestModel_PurgeAsksFirst(t *testing.T) {
	m, svc := newTestModel(t)
	seed(t, svc, "old.log")
	m.refresh()

	press(m, "x")
	assert.Nil(t, m.modal, "purge is only offered in the trash")

	press(m, "d", "3", "x")
	require.NotNil(t, m.modal)
	assert.Equal(t, modalPurge, m.modal.kind)

	m.modal.confirm = false
	m.submitModal()
	assert.Equal(t, []string{"old.log"}, names(m))

	press(m, "x")
	m.modal.confirm = true
	m.submitModal()
	assert.Empty(t, names(m))

	press(m, "1")
	assert.Empty(t, names(m))
}

func TestModel_UploadFromPath(t *testing.T) {
	m, svc := newTestModel(t)

	dir := t.TempDir()
	textPath := filepath.Join(dir, "readme.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("hello"), 0o644))

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	imagePath := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(imagePath, img.Bytes(), 0o644))

	press(m, "u")
	m.modal.value = textPath
	m.submitModal()
	assert.Equal(t, []string{"readme.txt"}, names(m))
	assert.Equal(t, "Uploaded readme.txt", m.status)

	press(m, "u")
	m.modal.value = "  " + imagePath + "  "
	m.submitModal()
	assert.Equal(t, "Reading logo.png...", m.status)

	svc.Wait()
	m.Update(eventMsg{event: event.Event{Type: event.TypeEntryAdded}})
	assert.Equal(t, []string{"logo.png", "readme.txt"}, names(m))
	assert.NotEmpty(t, m.page.Items[0].Thumbnail)

	press(m, "u")
	m.modal.value = filepath.Join(dir, "missing.txt")
	m.submitModal()
	assert.True(t, m.statusErr)
}

func TestModel_Download(t *testing.T) {
	m, svc := newTestModel(t)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	_, err := svc.Upload(context.Background(), service.NewMemorySource("logo.png", int64(img.Len()), img.Bytes()))
	require.NoError(t, err)
	seed(t, svc, "plan.pdf")
	svc.Wait()
	m.refresh()
	require.Equal(t, []string{"logo.png", "plan.pdf"}, names(m))

	press(m, "o")
	written, err := os.ReadFile(filepath.Join(m.downloadDir, "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, img.Bytes(), written)

	press(m, "o")
	_, err = os.Stat(filepath.Join(m.downloadDir, "logo (1).png"))
	require.NoError(t, err, "a second download keeps the first file")

	press(m, "j", "o")
	assert.Equal(t, "File download simulated. In a real application, this would download: plan.pdf", m.status)
}

func TestModel_EventRefreshesAndRearms(t *testing.T) {
	m, svc := newTestModel(t)
	events := make(chan event.Event, 1)
	m.events = events

	seed(t, svc, "late.txt")
	events <- event.Event{Type: event.TypeEntryAdded}

	msg := m.Init()()
	_, cmd := m.Update(msg)
	assert.Equal(t, []string{"late.txt"}, names(m))
	require.NotNil(t, cmd)

	close(events)
	assert.Equal(t, eventsClosedMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	m, svc := newTestModel(t)

	out := m.View()
	assert.Contains(t, out, "No files found")
	assert.Contains(t, out, "0.00 GB of 15 GB used")
	assert.Contains(t, out, "All Files")

	seed(t, svc, "budget.xlsx")
	m.refresh()
	press(m, "v")
	out = m.View()
	assert.Contains(t, out, "budget.xlsx")
	assert.Contains(t, out, "📊")

	press(m, "n")
	assert.Contains(t, m.View(), "Create New Folder")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"go-file-manager/internal/model"
	"go-file-manager/internal/service"
	"go-file-manager/internal/view"
)

type modalKind int

const (
	modalUpload modalKind = iota
	modalFolder
	modalRename
	modalPurge
)

// modal is one open dialog. The form writes into value and confirm, so a
// modal must stay behind a pointer while the form is alive.
type modal struct {
	kind    modalKind
	target  view.Item
	value   string
	confirm bool
	form    *huh.Form
}

func nonBlank(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}

func newUploadModal() *modal {
	md := &modal{kind: modalUpload}
	md.form = newForm(huh.NewInput().
		Title("Upload file").
		Description("Path of a local file").
		Value(&md.value).
		Validate(nonBlank("path")))
	return md
}

func newFolderModal() *modal {
	md := &modal{kind: modalFolder}
	md.form = newForm(huh.NewInput().
		Title("Create New Folder").
		Placeholder("Folder name").
		CharLimit(model.MaxNameLength).
		Value(&md.value).
		Validate(nonBlank("folder name")))
	return md
}

// newRenameModal prefills the input with the base name; the extension is
// kept by the rename itself.
func newRenameModal(item view.Item) *modal {
	base, _ := model.SplitName(item.Name, item.IsFolder)
	md := &modal{kind: modalRename, target: item, value: base}
	md.form = newForm(huh.NewInput().
		Title("Rename " + item.Name).
		CharLimit(model.MaxNameLength).
		Value(&md.value).
		Validate(nonBlank("name")))
	return md
}

func newPurgeModal(item view.Item) *modal {
	md := &modal{kind: modalPurge, target: item}
	md.form = newForm(huh.NewConfirm().
		Title(service.PurgePrompt).
		Description(item.Name).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&md.confirm))
	return md
}

func newForm(field huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(field)).WithShowHelp(false)
}

func (m *Model) openModal(md *modal) tea.Cmd {
	m.modal = md
	return md.form.Init()
}

func (m *Model) closeModal() {
	m.modal = nil
}

// updateModal handles Esc before the form sees it, so Esc always closes.
func (m *Model) updateModal(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeModal()
		return nil
	}

	updated, cmd := m.modal.form.Update(msg)
	form, ok := updated.(*huh.Form)
	if !ok {
		m.setStatus("internal error: unexpected form model type", true)
		m.closeModal()
		return nil
	}
	m.modal.form = form

	switch form.State {
	case huh.StateCompleted:
		m.submitModal()
		return nil
	case huh.StateAborted:
		m.closeModal()
		return nil
	}

	return cmd
}

// submitModal applies the dialog's values and closes it.
func (m *Model) submitModal() {
	md := m.modal
	m.closeModal()

	switch md.kind {
	case modalUpload:
		m.upload(strings.TrimSpace(md.value))
	case modalFolder:
		m.createFolder(md.value)
	case modalRename:
		m.rename(md.target, md.value)
	case modalPurge:
		m.purge(md.target, md.confirm)
	}
}

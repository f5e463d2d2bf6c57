package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	All      key.Binding
	Recent   key.Binding
	Trash    key.Binding
	Search   key.Binding
	Sort     key.Binding
	Mode     key.Binding
	Up       key.Binding
	Down     key.Binding
	Upload   key.Binding
	Folder   key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Purge    key.Binding
	Restore  key.Binding
	Download key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		All:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Recent:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "recent")),
		Trash:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "trash")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Mode:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "grid/list")),
		Up:       key.NewBinding(key.WithKeys("k", "up", "left", "h"), key.WithHelp("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down", "right", "l"), key.WithHelp("j", "down")),
		Upload:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		Folder:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new folder")),
		Rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Purge:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete forever")),
		Restore:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "restore")),
		Download: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "download")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp make keyMap a help.KeyMap. Only the bindings that
// apply to the current section are enabled, so help hides the rest.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Sort, k.Mode, k.Upload, k.Folder, k.Rename, k.Delete, k.Download, k.Restore, k.Purge, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.All, k.Recent, k.Trash},
		{k.Up, k.Down, k.Search, k.Sort, k.Mode},
		{k.Upload, k.Folder, k.Rename, k.Delete, k.Download},
		{k.Restore, k.Purge, k.Quit},
	}
}

// forSection enables the entry actions that the section's items offer.
func (k *keyMap) forSection(trash bool) {
	k.Rename.SetEnabled(!trash)
	k.Delete.SetEnabled(!trash)
	k.Download.SetEnabled(!trash)
	k.Restore.SetEnabled(trash)
	k.Purge.SetEnabled(trash)
}

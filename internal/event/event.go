package event

type Type string

const (
	TypeEntryAdded    Type = "entry.added"
	TypeEntryDeleted  Type = "entry.deleted"
	TypeEntryRestored Type = "entry.restored"
	TypeEntryPurged   Type = "entry.purged"
	TypeEntryRenamed  Type = "entry.renamed"
	TypeFolderCreated Type = "folder.created"
	TypePreviewReady  Type = "preview.ready"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}

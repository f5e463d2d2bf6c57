package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-file-manager/internal/event"
	"go-file-manager/internal/metrics"
	"go-file-manager/internal/model"
	"go-file-manager/internal/preview"
	"go-file-manager/internal/store"
	"go-file-manager/internal/util"
	"go-file-manager/internal/view"
	"go-file-manager/pkg/apierror"
)

type EntryService struct {
	loop     *store.Loop
	previews *preview.Generator
	bus      event.Bus
	now      func() time.Time
	pending  sync.WaitGroup
}

func NewEntryService(loop *store.Loop, previews *preview.Generator, bus event.Bus) *EntryService {
	return &EntryService{loop: loop, previews: previews, bus: bus, now: time.Now}
}

// SetClock replaces the time source used for creation stamps and views.
func (s *EntryService) SetClock(now func() time.Time) {
	if now == nil {
		return
	}
	s.now = now
}

// PurgeResult tells a declined prompt apart from a missing entry.
type PurgeResult struct {
	Confirmed bool
	Changed   bool
}

// Download is what a download action resolves to: the preview bytes when the
// entry has them, a simulated message otherwise.
type Download struct {
	Entry   model.Entry
	Preview *model.Preview
	Message string
}

// Upload adds a selected file. Images small enough for a preview are read in
// the background and only become visible once the read finished; the item is
// reported as pending. Everything else is added before Upload returns.
func (s *EntryService) Upload(ctx context.Context, src Source) (model.UploadItem, error) {
	name := util.CleanName(src.Name())
	if name == "" {
		return model.UploadItem{}, apierror.InvalidFilename("filename cannot be empty", src.Name())
	}

	size := src.Size()
	if size < 0 {
		return model.UploadItem{}, apierror.BadRequest("file size cannot be negative", name)
	}

	entry := model.Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Size:      size,
		Category:  util.CategoryOf(name),
		CreatedAt: s.now(),
	}

	item := model.UploadItem{
		ID:       entry.ID,
		Name:     entry.Name,
		Size:     entry.Size,
		Category: entry.Category,
	}

	if entry.Category == model.CategoryImage && entry.Size < model.PreviewMaxBytes {
		s.pending.Add(1)
		go s.readPreview(entry, src)

		item.Pending = true
		metrics.RecordUpload("preview", size)
		return item, nil
	}

	if err := s.loop.Do(ctx, func(st *store.Store) {
		st.Add(entry)
		observe(st)
	}); err != nil {
		return model.UploadItem{}, err
	}

	metrics.RecordUpload("sync", size)
	s.publish(event.TypeEntryAdded, entry)

	return item, nil
}

func (s *EntryService) readPreview(entry model.Entry, src Source) {
	defer s.pending.Done()

	data, err := readSource(src, model.PreviewMaxBytes)
	if err != nil {
		slog.Warn("preview read failed, keeping entry without preview", "entry_id", entry.ID, "name", entry.Name, "error", err)
		metrics.RecordPreviewFailure()
	} else {
		built, buildErr := s.previews.Build(entry.Name, data)
		if buildErr != nil {
			slog.Warn("preview incomplete", "entry_id", entry.ID, "name", entry.Name, "error", buildErr)
			metrics.RecordPreviewFailure()
		}
		entry.Preview = built
	}

	posted := s.loop.Post(func(st *store.Store) {
		st.Add(entry)
		observe(st)

		added, _ := st.Get(entry.ID)
		s.publish(event.TypeEntryAdded, added)
		if added.HasPreview() {
			s.publish(event.TypePreviewReady, added)
		}
	})
	if !posted {
		slog.Warn("store stopped before preview completed", "entry_id", entry.ID, "name", entry.Name)
	}
}

func readSource(src Source, limit int64) ([]byte, error) {
	reader, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", src.Name(), err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, limit))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", src.Name(), err)
	}

	return data, nil
}

// Wait blocks until every background preview read has posted its entry.
func (s *EntryService) Wait() {
	s.pending.Wait()
}

// CreateFolder adds a folder. A blank name is ignored; a name with a path
// separator is rejected.
func (s *EntryService) CreateFolder(ctx context.Context, name string) (model.Entry, bool, error) {
	if err := checkNoSeparators(name); err != nil {
		return model.Entry{}, false, err
	}

	cleaned := util.CleanName(name)
	if cleaned == "" {
		return model.Entry{}, false, nil
	}

	entry := model.Entry{
		ID:        uuid.NewString(),
		Name:      cleaned,
		Category:  model.CategoryFolder,
		CreatedAt: s.now(),
		IsFolder:  true,
	}

	if err := s.loop.Do(ctx, func(st *store.Store) {
		st.Add(entry)
		observe(st)
	}); err != nil {
		return model.Entry{}, false, err
	}

	s.publish(event.TypeFolderCreated, entry)
	return entry, true, nil
}

// Rename replaces the base name and keeps the extension. A blank base is
// ignored; a base with a path separator is rejected.
func (s *EntryService) Rename(ctx context.Context, id string, newBase string) (model.Entry, bool, error) {
	if err := checkNoSeparators(newBase); err != nil {
		return model.Entry{}, false, err
	}

	base := util.CleanName(newBase)

	var renamed model.Entry
	var changed bool
	if err := s.loop.Do(ctx, func(st *store.Store) {
		renamed, changed = st.Rename(id, base)
	}); err != nil {
		return model.Entry{}, false, err
	}

	if changed {
		s.publish(event.TypeEntryRenamed, renamed)
	}
	return renamed, changed, nil
}

// checkNoSeparators guards names typed by the user. Uploads are different:
// browsers may send a relative path there and only its last element is kept.
func checkNoSeparators(name string) error {
	if strings.ContainsAny(name, `/\`) {
		return apierror.InvalidFilename("name must not contain path separators", name)
	}
	return nil
}

func (s *EntryService) Delete(ctx context.Context, id string) (bool, error) {
	return s.setDeleted(ctx, id, true)
}

func (s *EntryService) Restore(ctx context.Context, id string) (bool, error) {
	return s.setDeleted(ctx, id, false)
}

func (s *EntryService) setDeleted(ctx context.Context, id string, deleted bool) (bool, error) {
	var changed bool
	if err := s.loop.Do(ctx, func(st *store.Store) {
		if deleted {
			changed = st.Delete(id)
		} else {
			changed = st.Restore(id)
		}
		observe(st)
	}); err != nil {
		return false, err
	}

	if changed {
		eventType := event.TypeEntryRestored
		if deleted {
			eventType = event.TypeEntryDeleted
		}
		s.publish(eventType, map[string]string{"id": id})
	}
	return changed, nil
}

// Purge asks confirm before erasing an entry. A nil Confirmer counts as a no.
// The prompt runs before the store is touched so a slow answer never holds
// the loop.
func (s *EntryService) Purge(ctx context.Context, id string, confirm Confirmer) (PurgeResult, error) {
	if confirm == nil || !confirm.Confirm(ctx, PurgePrompt) {
		return PurgeResult{}, nil
	}

	result := PurgeResult{Confirmed: true}
	if err := s.loop.Do(ctx, func(st *store.Store) {
		result.Changed = st.Purge(id)
		observe(st)
	}); err != nil {
		return PurgeResult{}, err
	}

	if result.Changed {
		s.publish(event.TypeEntryPurged, map[string]string{"id": id})
	}
	return result, nil
}

func (s *EntryService) Get(ctx context.Context, id string) (model.Entry, bool, error) {
	var entry model.Entry
	var found bool
	if err := s.loop.Do(ctx, func(st *store.Store) {
		entry, found = st.Get(id)
	}); err != nil {
		return model.Entry{}, false, err
	}
	return entry, found, nil
}

func (s *EntryService) Download(ctx context.Context, id string) (Download, bool, error) {
	var result Download
	var found bool
	if err := s.loop.Do(ctx, func(st *store.Store) {
		result.Entry, found = st.Get(id)
		if found {
			result.Preview, _ = st.Preview(id)
		}
	}); err != nil {
		return Download{}, false, err
	}

	if !found {
		return Download{}, false, nil
	}

	if result.Preview == nil {
		result.Message = "File download simulated. In a real application, this would download: " + result.Entry.Name
	}
	return result, true, nil
}

// Thumbnail returns the scaled preview of an entry, or nil when it has none.
func (s *EntryService) Thumbnail(ctx context.Context, id string) ([]byte, error) {
	var thumbnail []byte
	if err := s.loop.Do(ctx, func(st *store.Store) {
		if p, ok := st.Preview(id); ok {
			thumbnail = p.Thumbnail
		}
	}); err != nil {
		return nil, err
	}
	return thumbnail, nil
}

func (s *EntryService) Snapshot(ctx context.Context) ([]model.Entry, error) {
	var snapshot []model.Entry
	if err := s.loop.Do(ctx, func(st *store.Store) {
		snapshot = st.Snapshot()
	}); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// View runs the filter, sort and render pipeline over the current store.
func (s *EntryService) View(ctx context.Context, query view.Query, thumbnailURL func(model.Entry) string) (view.Page, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return view.Page{}, err
	}
	return view.Build(snapshot, query, s.now(), thumbnailURL), nil
}

func (s *EntryService) Usage(ctx context.Context) (view.Usage, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return view.Usage{}, err
	}
	return view.ComputeUsage(snapshot), nil
}

func (s *EntryService) publish(eventType event.Type, payload any) {
	if s.bus == nil {
		return
	}

	s.bus.Publish(event.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// observe mirrors the store into the metrics gauges. It runs on the loop.
func observe(st *store.Store) {
	stats := st.Stats()
	usage := view.ComputeUsage(st.Snapshot())
	metrics.SetStoreState(stats.Entries-stats.Deleted, stats.Deleted, stats.Previews, stats.Evictions, usage.UsedBytes)
}

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-file-manager/internal/config"
	"go-file-manager/internal/model"
	"go-file-manager/internal/service"
)

func TestCore_StopDrainsPendingPreviews(t *testing.T) {
	core, err := NewCore(&config.Config{PreviewCacheEntries: 4, ThumbnailSize: 32})
	require.NoError(t, err)
	core.Start()

	ctx := context.Background()
	item, err := core.Service.Upload(ctx, service.NewMemorySource("a.png", 3, []byte("png")))
	require.NoError(t, err)
	require.True(t, item.Pending)

	core.Service.Wait()
	entries, err := core.Service.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, item.ID, entries[0].ID)

	core.Stop()

	_, err = core.Service.Snapshot(ctx)
	assert.ErrorIs(t, err, model.ErrLoopStopped)
}

package view

import (
	"fmt"

	"go-file-manager/internal/model"
)

const gib = 1024 * 1024 * 1024

type Usage struct {
	UsedBytes     int64   `json:"used_bytes"`
	CapacityBytes int64   `json:"capacity_bytes"`
	Percent       float64 `json:"percent"`
	BarPercent    float64 `json:"bar_percent"`
	Text          string  `json:"text"`
	ActiveEntries int     `json:"active_entries"`
}

// ComputeUsage sums the sizes of entries that are not in the trash and
// relates them to the fixed storage capacity.
func ComputeUsage(entries []model.Entry) Usage {
	usage := Usage{CapacityBytes: model.StorageCapacityBytes}
	for _, entry := range entries {
		if entry.IsDeleted {
			continue
		}
		usage.UsedBytes += entry.Size
		usage.ActiveEntries++
	}

	usage.Percent = float64(usage.UsedBytes) / float64(usage.CapacityBytes) * 100
	usage.BarPercent = min(usage.Percent, 100)
	usage.Text = fmt.Sprintf("%.2f GB of %d GB used", float64(usage.UsedBytes)/gib, usage.CapacityBytes/gib)

	return usage
}

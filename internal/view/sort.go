package view

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"go-file-manager/internal/model"
)

// Sort orders entries in place. Names ascend under English collation, dates
// and sizes descend. Unknown keys leave the order untouched; ties always keep
// their input order.
func Sort(entries []model.Entry, key model.SortKey) {
	switch key {
	case model.SortByName:
		// A Collator keeps scratch buffers, so each call gets its own.
		collator := collate.New(language.English)
		slices.SortStableFunc(entries, func(a, b model.Entry) int {
			return collator.CompareString(a.Name, b.Name)
		})
	case model.SortByDate:
		slices.SortStableFunc(entries, func(a, b model.Entry) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case model.SortBySize:
		slices.SortStableFunc(entries, func(a, b model.Entry) int {
			return cmp.Compare(b.Size, a.Size)
		})
	}
}

package workflow

import (
	"sort"

	"headshot-viewer/internal/models"
)

const (
	FilterAll       = "All Types"
	FilterPortrait  = "Portrait"
	FilterLandscape = "Landscape"

	SortNewest = "Date: Newest"
	SortOldest = "Date: Oldest"
	SortName   = "Name: A-Z"
)

func Filters() []string { return []string{FilterAll, FilterPortrait, FilterLandscape} }
func Sorts() []string   { return []string{SortNewest, SortOldest, SortName} }

// Arrange returns the collection indices to display for a filter and sort
// order. The collection itself is never reordered, so an index returned
// here is always valid for ToggleSelect.
func Arrange(records []*models.ImageRecord, filter, order string) []int {
	out := make([]int, 0, len(records))
	for i, r := range records {
		switch filter {
		case FilterPortrait, FilterLandscape:
			if r.Orientation() != filter {
				continue
			}
		}
		out = append(out, i)
	}

	less := func(a, b int) bool { return a < b }
	switch order {
	case SortNewest:
		less = func(a, b int) bool { return records[a].CreatedDate() > records[b].CreatedDate() }
	case SortOldest:
		less = func(a, b int) bool { return records[a].CreatedDate() < records[b].CreatedDate() }
	case SortName:
		less = func(a, b int) bool { return records[a].Name() < records[b].Name() }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

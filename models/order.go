package models

import (
	"sort"
	"time"
)

type newsSlice struct {
	items []NewsItem
	times []time.Time
}

func (s newsSlice) Len() int {
	return len(s.items)
}

func (s newsSlice) Less(i, j int) bool {
	return s.times[i].After(s.times[j])
}

func (s newsSlice) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.times[i], s.times[j] = s.times[j], s.times[i]
}

// SortNewest orders items newest first in place. Items with equal creation
// times keep their relative order.
func SortNewest(items []NewsItem) {
	s := newsSlice{items: items, times: make([]time.Time, len(items))}
	for i := range items {
		s.times[i] = items[i].CreatedTime()
	}
	sort.Stable(s)
}

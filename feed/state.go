package feed

import "github.com/ascww/newsportal/models"

// State is a point-in-time copy of a Controller.
type State struct {
	Revealed        []models.NewsItem
	Fetched         int
	Loading         bool
	HasMoreUpstream bool
	LastError       *Failure
}

// Display flags derived from a State. More than one may be set at once; a
// renderer checks EmptyError first.
type Display struct {
	EmptyError     bool
	TrailingError  bool
	Exhausted      bool
	LoadingMore    bool
	SentinelActive bool
}

func (s State) Display() Display {
	return Display{
		EmptyError:     s.LastError != nil && len(s.Revealed) == 0,
		TrailingError:  s.LastError != nil && len(s.Revealed) != 0,
		Exhausted:      !s.HasMoreUpstream && s.Fetched != 0 && len(s.Revealed) == s.Fetched,
		LoadingMore:    s.Loading,
		SentinelActive: len(s.Revealed) < s.Fetched && s.LastError == nil,
	}
}

// Empty reports whether a completed fetch found no news at all.
func (s State) Empty() bool {
	return !s.Loading && !s.HasMoreUpstream && s.Fetched == 0 && s.LastError == nil
}

package selector

import (
	"context"
	"fmt"
)

var _ CandidateSelector = Unavailable{}

// Unavailable stands in when no AI client could be constructed. Every call
// fails, which the planner resolves to the empty-itinerary outcome.
type Unavailable struct {
	Err error
}

func (u Unavailable) SelectCandidates(_ context.Context, _, _ string, _ []Candidate) ([]Selection, error) {
	return nil, fmt.Errorf("candidate selector unavailable: %w", u.Err)
}

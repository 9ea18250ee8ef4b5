package availability

import "github.com/roomfinder/roomfinder-backend/internal/model"

// Criteria holds the optional filter dimensions. A zero field imposes no
// constraint; floors start at 1, so Floor == 0 means "any floor".
type Criteria struct {
	Block    string `json:"block,omitempty"`
	Floor    int    `json:"floor,omitempty"`
	Day      string `json:"day,omitempty"`
	TimeSlot string `json:"time,omitempty"`
}

// IsEmpty reports whether no dimension is constrained.
func (c Criteria) IsEmpty() bool {
	return c == Criteria{}
}

// Matches reports whether r satisfies every present criterion.
func (c Criteria) Matches(r *model.Classroom) bool {
	if c.Block != "" && r.Location != c.Block {
		return false
	}
	if c.Floor != 0 && r.Floor != c.Floor {
		return false
	}
	if c.Day != "" && r.Day != c.Day {
		return false
	}
	if c.TimeSlot != "" && !r.HasSlot(c.TimeSlot) {
		return false
	}
	return true
}

// Filter returns the records matching c in their original order. The input
// slice is not modified and the result is never nil.
func Filter(records []model.Classroom, c Criteria) []model.Classroom {
	out := make([]model.Classroom, 0, len(records))
	for i := range records {
		if c.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

package model

// Classroom is one catalog record: a room together with the free time
// slots it has on a single weekday. A room that is free on several days
// appears once per day.
type Classroom struct {
	ID             int      `json:"id"`
	Number         string   `json:"number"`
	Location       string   `json:"location"`
	Floor          int      `json:"floor"`
	Day            string   `json:"day"`
	AvailableTimes []string `json:"availableTimes"`
}

// HasSlot reports whether label is one of the record's free slots.
func (c *Classroom) HasSlot(label string) bool {
	for _, t := range c.AvailableTimes {
		if t == label {
			return true
		}
	}
	return false
}

// Room is a row of the classrooms table, independent of any weekday.
type Room struct {
	ID       int    `json:"id"`
	Number   string `json:"number"`
	Location string `json:"location"`
	Floor    int    `json:"floor"`
}

// ClassroomQuery narrows a catalog read at the storage layer.
// Zero-valued fields are ignored.
type ClassroomQuery struct {
	Number   string
	Location string
	Floor    int
	Day      string
}

// SearchClassroomsRequest binds the query string of the versioned search endpoint.
type SearchClassroomsRequest struct {
	Block string `form:"block" binding:"omitempty,block"`
	Floor int    `form:"floor" binding:"omitempty,min=1"`
	Day   string `form:"day" binding:"omitempty,weekday"`
	Time  string `form:"time" binding:"omitempty,timeslot"`
}

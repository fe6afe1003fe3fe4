package study

type Subtopic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// Subject is a topic of study. MonthID is empty for unassigned subjects.
//
// Schedules is the nested view keyed by calendar month key (YYYY-MM). It is
// filled when a Subject leaves the store and read when one enters it; the
// store itself keeps schedules in a flat map keyed by ScheduleKey.
type Subject struct {
	ID        string                     `json:"id"`
	Title     string                     `json:"title"`
	Color     string                     `json:"color"`
	CreatedAt int64                      `json:"createdAt"`
	MonthID   string                     `json:"monthId,omitempty"`
	Subtopics []Subtopic                 `json:"subtopics"`
	Schedules map[string]SubjectSchedule `json:"schedules"`
}

// CompletedSubtopics counts checked items.
func (s Subject) CompletedSubtopics() int {
	n := 0
	for _, st := range s.Subtopics {
		if st.IsCompleted {
			n++
		}
	}
	return n
}

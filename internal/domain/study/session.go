package study

type SessionStatus string

const (
	SessionCompleted  SessionStatus = "completed"
	SessionIncomplete SessionStatus = "incomplete"
)

func (s SessionStatus) Valid() bool {
	return s == SessionCompleted || s == SessionIncomplete
}

// Session is one logged interval of study. Duration is in seconds, Date is the
// local calendar day (YYYY-MM-DD) and StartTime is unix milliseconds.
type Session struct {
	ID        string        `json:"id"`
	SubjectID string        `json:"subjectId"`
	Duration  int           `json:"duration"`
	Date      string        `json:"date"`
	StartTime int64         `json:"startTime"`
	Status    SessionStatus `json:"status"`
}

func (s Session) IsCompleted() bool { return s.Status == SessionCompleted }

// SessionRecord is the structured input for recording a session. Zero values
// fall back to: Date today, StartTime now, Status completed.
type SessionRecord struct {
	SubjectID string        `json:"subjectId"`
	Duration  int           `json:"duration"`
	Date      string        `json:"date,omitempty"`
	StartTime int64         `json:"startTime,omitempty"`
	Status    SessionStatus `json:"status,omitempty"`
}

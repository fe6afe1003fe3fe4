package study

// Month is a user-defined planning bucket (an exam, a rotation). It is not a
// calendar month; see MonthKey for that.
type Month struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Year int    `json:"year"`
}

// CopySuffix is appended to the name of a duplicated Month.
const CopySuffix = " (Cópia)"

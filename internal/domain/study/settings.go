package study

type HealthDegree string

const (
	DegreeMedicine         HealthDegree = "Medicine"
	DegreePharmacy         HealthDegree = "Pharmacy"
	DegreeNursing          HealthDegree = "Nursing"
	DegreeDentistry        HealthDegree = "Dentistry"
	DegreePhysiotherapy    HealthDegree = "Physiotherapy"
	DegreeBiomedicine      HealthDegree = "Biomedicine"
	DegreeNutrition        HealthDegree = "Nutrition"
	DegreeClinicalAnalysis HealthDegree = "Clinical Analysis"
	DegreeRadiology        HealthDegree = "Radiology"
)

var healthDegrees = map[HealthDegree]struct{}{
	DegreeMedicine:         {},
	DegreePharmacy:         {},
	DegreeNursing:          {},
	DegreeDentistry:        {},
	DegreePhysiotherapy:    {},
	DegreeBiomedicine:      {},
	DegreeNutrition:        {},
	DegreeClinicalAnalysis: {},
	DegreeRadiology:        {},
}

func (d HealthDegree) Valid() bool {
	_, ok := healthDegrees[d]
	return ok
}

// Settings is the per-user singleton. Durations are in minutes.
type Settings struct {
	PomodoroDuration   int          `json:"pomodoroDuration"`
	UserName           string       `json:"userName"`
	HealthDegree       HealthDegree `json:"healthDegree,omitempty"`
	FinalGoal          string       `json:"finalGoal,omitempty"`
	MonthlyGoalHours   int          `json:"monthlyGoalHours"`
	ShortBreakDuration int          `json:"shortBreakDuration,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		PomodoroDuration:   25,
		UserName:           "Estudante",
		HealthDegree:       DegreeMedicine,
		MonthlyGoalHours:   40,
		ShortBreakDuration: 5,
	}
}

type SettingsPatch struct {
	PomodoroDuration   *int          `json:"pomodoroDuration,omitempty"`
	UserName           *string       `json:"userName,omitempty"`
	HealthDegree       *HealthDegree `json:"healthDegree,omitempty"`
	FinalGoal          *string       `json:"finalGoal,omitempty"`
	MonthlyGoalHours   *int          `json:"monthlyGoalHours,omitempty"`
	ShortBreakDuration *int          `json:"shortBreakDuration,omitempty"`
}

func (p SettingsPatch) Apply(s Settings) Settings {
	if p.PomodoroDuration != nil {
		s.PomodoroDuration = *p.PomodoroDuration
	}
	if p.UserName != nil {
		s.UserName = *p.UserName
	}
	if p.HealthDegree != nil {
		s.HealthDegree = *p.HealthDegree
	}
	if p.FinalGoal != nil {
		s.FinalGoal = *p.FinalGoal
	}
	if p.MonthlyGoalHours != nil {
		s.MonthlyGoalHours = *p.MonthlyGoalHours
	}
	if p.ShortBreakDuration != nil {
		s.ShortBreakDuration = *p.ShortBreakDuration
	}
	return s
}

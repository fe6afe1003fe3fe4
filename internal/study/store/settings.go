package store

import (
	"context"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
)

// UpdateSettings shallow-merges patch into the settings singleton.
func (s *Store) UpdateSettings(ctx context.Context, patch study.SettingsPatch) (study.Settings, error) {
	const op = "update settings"
	if patch.PomodoroDuration != nil && *patch.PomodoroDuration <= 0 {
		return study.Settings{}, invalid(op, "pomodoro duration must be positive")
	}
	if patch.ShortBreakDuration != nil && *patch.ShortBreakDuration < 0 {
		return study.Settings{}, invalid(op, "negative short break")
	}
	if patch.MonthlyGoalHours != nil && *patch.MonthlyGoalHours < 0 {
		return study.Settings{}, invalid(op, "negative monthly goal")
	}
	if patch.HealthDegree != nil && !patch.HealthDegree.Valid() {
		return study.Settings{}, invalid(op, "unknown health degree %q", *patch.HealthDegree)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = patch.Apply(s.settings)
	return s.settings, s.commit(ctx, op)
}

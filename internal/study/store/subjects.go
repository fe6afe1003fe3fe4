package store

import (
	"context"
	"slices"
	"strings"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
)

// AddSubject creates a subject. monthID may be empty; when set it must name
// an existing month.
func (s *Store) AddSubject(ctx context.Context, title, monthID string) (study.Subject, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return study.Subject{}, invalid("add subject", "empty title")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if monthID != "" && s.monthIndex(monthID) < 0 {
		return study.Subject{}, notFound("add subject", "month", monthID)
	}
	sub := s.newSubjectLocked(title, monthID)
	s.subjects = append(s.subjects, sub)
	return s.withSchedulesLocked(sub), s.commit(ctx, "add subject")
}

// AddSubjects inserts a batch of titles (typically produced by an external
// text organizer) with a single save. Blank titles are skipped.
func (s *Store) AddSubjects(ctx context.Context, titles []string, monthID string) ([]study.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if monthID != "" && s.monthIndex(monthID) < 0 {
		return nil, notFound("add subjects", "month", monthID)
	}
	out := make([]study.Subject, 0, len(titles))
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		sub := s.newSubjectLocked(title, monthID)
		s.subjects = append(s.subjects, sub)
		out = append(out, s.withSchedulesLocked(sub))
	}
	if len(out) == 0 {
		return out, nil
	}
	return out, s.commit(ctx, "add subjects")
}

func (s *Store) newSubjectLocked(title, monthID string) study.Subject {
	return study.Subject{
		ID:        s.newID(),
		Title:     title,
		Color:     s.pickColor(),
		CreatedAt: s.Now().UnixMilli(),
		MonthID:   monthID,
		Subtopics: []study.Subtopic{},
	}
}

// DeleteSubject removes the subject, its schedules and all of its sessions.
// Sessions and schedules left behind by DeleteMonth are cleaned up even though
// the subject itself is already gone.
func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	if i := s.subjectIndex(id); i >= 0 {
		s.subjects = slices.Delete(s.subjects, i, i+1)
		changed = true
	}
	if s.dropSchedulesLocked(id) {
		changed = true
	}
	before := len(s.sessions)
	s.sessions = slices.DeleteFunc(s.sessions, func(sess study.Session) bool {
		return sess.SubjectID == id
	})
	if len(s.sessions) != before {
		changed = true
	}
	if !changed {
		return nil
	}
	return s.commit(ctx, "delete subject")
}

func (s *Store) AddSubtopic(ctx context.Context, subjectID, title string) (*study.Subtopic, error) {
	added, err := s.AddSubtopics(ctx, subjectID, []string{title})
	if err != nil || len(added) == 0 {
		return nil, err
	}
	return &added[0], nil
}

// AddSubtopics appends checklist items in order. Blank titles are skipped and
// an unknown subject is a no-op.
func (s *Store) AddSubtopics(ctx context.Context, subjectID string, titles []string) ([]study.Subtopic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.subjectIndex(subjectID)
	if i < 0 {
		return nil, nil
	}
	var added []study.Subtopic
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		added = append(added, study.Subtopic{ID: s.newID(), Title: title})
	}
	if len(added) == 0 {
		return nil, nil
	}
	s.subjects[i].Subtopics = append(slices.Clone(s.subjects[i].Subtopics), added...)
	return added, s.commit(ctx, "add subtopics")
}

func (s *Store) ToggleSubtopic(ctx context.Context, subjectID, subtopicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.subjectIndex(subjectID)
	if i < 0 {
		return nil
	}
	j := slices.IndexFunc(s.subjects[i].Subtopics, func(st study.Subtopic) bool { return st.ID == subtopicID })
	if j < 0 {
		return nil
	}
	topics := slices.Clone(s.subjects[i].Subtopics)
	topics[j].IsCompleted = !topics[j].IsCompleted
	s.subjects[i].Subtopics = topics
	return s.commit(ctx, "toggle subtopic")
}

func (s *Store) subjectIndex(id string) int {
	return slices.IndexFunc(s.subjects, func(sub study.Subject) bool { return sub.ID == id })
}

func (s *Store) dropSchedulesLocked(subjectID string) bool {
	dropped := false
	for key := range s.schedules {
		if key.SubjectID == subjectID {
			delete(s.schedules, key)
			dropped = true
		}
	}
	return dropped
}

package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	apperr "github.com/yungbote/studyhours-backend/internal/pkg/errors"
)

type recordingPersister struct {
	saves []study.Snapshot
	fail  error
}

func (p *recordingPersister) Save(_ context.Context, s study.Snapshot) error {
	if p.fail != nil {
		return p.fail
	}
	p.saves = append(p.saves, s)
	return nil
}

func ptr[T any](v T) *T { return &v }

var fixedNow = time.Date(2025, time.March, 10, 21, 30, 0, 0, time.FixedZone("BRT", -3*60*60))

func newTestStore(t *testing.T, opts ...Option) (*Store, *recordingPersister) {
	t.Helper()
	p := &recordingPersister{}
	n := 0
	base := []Option{
		WithPersister(p),
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(fixedNow.Location()),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithColorPicker(func() string { return "hsl(200, 70%, 50%)" }),
	}
	return New(append(base, opts...)...), p
}

func mustMonth(t *testing.T, s *Store, name string) study.Month {
	t.Helper()
	m, err := s.AddMonth(context.Background(), name, 2025)
	if err != nil {
		t.Fatalf("AddMonth: %v", err)
	}
	return m
}

func mustSubject(t *testing.T, s *Store, title, monthID string) study.Subject {
	t.Helper()
	sub, err := s.AddSubject(context.Background(), title, monthID)
	if err != nil {
		t.Fatalf("AddSubject: %v", err)
	}
	return sub
}

func mustSession(t *testing.T, s *Store, rec study.SessionRecord) study.Session {
	t.Helper()
	sess, err := s.RecordSession(context.Background(), rec)
	if err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	return sess
}

func TestAddMonthRejectsBlankName(t *testing.T) {
	s, p := newTestStore(t)
	_, err := s.AddMonth(context.Background(), "   ", 2025)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if len(s.Months()) != 0 || len(p.saves) != 0 {
		t.Fatalf("blank month should not be stored or saved")
	}
}

func TestEditMonthUnknownIDIsNoop(t *testing.T) {
	s, p := newTestStore(t)
	m := mustMonth(t, s, "Cardiologia")
	if err := s.EditMonth(context.Background(), "missing", "X"); err != nil {
		t.Fatalf("EditMonth missing: %v", err)
	}
	if len(p.saves) != 1 {
		t.Fatalf("no-op should not persist, saves=%d", len(p.saves))
	}
	if err := s.EditMonth(context.Background(), m.ID, "Pneumologia"); err != nil {
		t.Fatalf("EditMonth: %v", err)
	}
	got, _ := s.Month(m.ID)
	if got.Name != "Pneumologia" {
		t.Fatalf("rename failed: %+v", got)
	}
}

func TestDeleteMonthCascadesOnlyToSubjects(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	m := mustMonth(t, s, "Cardiologia")
	other := mustMonth(t, s, "Nefrologia")
	inMonth := mustSubject(t, s, "Arritmias", m.ID)
	kept := mustSubject(t, s, "Glomerulopatias", other.ID)
	orphan := mustSession(t, s, study.SessionRecord{SubjectID: inMonth.ID, Duration: 600})
	mustSession(t, s, study.SessionRecord{SubjectID: kept.ID, Duration: 600})

	if err := s.DeleteMonth(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMonth: %v", err)
	}
	if _, ok := s.Month(m.ID); ok {
		t.Fatalf("month still present")
	}
	if _, ok := s.Subject(inMonth.ID); ok {
		t.Fatalf("subject of deleted month still present")
	}
	if _, ok := s.Subject(kept.ID); !ok {
		t.Fatalf("subject of other month removed")
	}
	found := false
	for _, sess := range s.Sessions() {
		if sess.ID == orphan.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("sessions must not be removed by month deletion")
	}

	// the orphaned sessions go away once their subject is deleted
	if err := s.DeleteSubject(ctx, inMonth.ID); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}
	for _, sess := range s.Sessions() {
		if sess.SubjectID == inMonth.ID {
			t.Fatalf("orphan session survived subject deletion")
		}
	}
}

func TestDeleteSubjectCascadesSessions(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	a := mustSubject(t, s, "Anatomia", "")
	b := mustSubject(t, s, "Fisiologia", "")
	for i := 0; i < 3; i++ {
		mustSession(t, s, study.SessionRecord{SubjectID: a.ID, Duration: 100})
	}
	mustSession(t, s, study.SessionRecord{SubjectID: b.ID, Duration: 100})
	if _, err := s.ToggleSubjectInMonth(ctx, a.ID, "2025-03"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := s.DeleteSubject(ctx, a.ID); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}
	for _, sess := range s.Sessions() {
		if sess.SubjectID == a.ID {
			t.Fatalf("session of deleted subject remains: %+v", sess)
		}
	}
	if len(s.Sessions()) != 1 {
		t.Fatalf("unrelated sessions removed: %d left", len(s.Sessions()))
	}
	if _, ok := s.Schedule(a.ID, "2025-03"); ok {
		t.Fatalf("schedule of deleted subject remains")
	}
}

func TestDeleteSubjectCleansSessionsOfDeletedMonth(t *testing.T) {
	ctx := context.Background()
	s, p := newTestStore(t)
	m := mustMonth(t, s, "Pediatria")
	sub := mustSubject(t, s, "Neonatologia", m.ID)
	mustSession(t, s, study.SessionRecord{SubjectID: sub.ID, Duration: 900})
	other := mustSubject(t, s, "Puericultura", "")
	mustSession(t, s, study.SessionRecord{SubjectID: other.ID, Duration: 900})

	if err := s.DeleteMonth(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMonth: %v", err)
	}
	if got := len(s.Sessions()); got != 2 {
		t.Fatalf("sessions after month deletion: %d", got)
	}

	saves := len(p.saves)
	if err := s.DeleteSubject(ctx, sub.ID); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}
	sessions := s.Sessions()
	if len(sessions) != 1 || sessions[0].SubjectID != other.ID {
		t.Fatalf("orphaned sessions not removed: %+v", sessions)
	}
	if len(p.saves) != saves+1 {
		t.Fatalf("cleanup not persisted: saves=%d", len(p.saves))
	}

	if err := s.DeleteSubject(ctx, sub.ID); err != nil {
		t.Fatalf("second DeleteSubject: %v", err)
	}
	if len(p.saves) != saves+1 {
		t.Fatalf("no-op delete saved: saves=%d", len(p.saves))
	}
}

func TestDuplicateMonthDeepCopiesSubjects(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	m := mustMonth(t, s, "Cardiologia")
	sub := mustSubject(t, s, "Arritmias", m.ID)
	if _, err := s.AddSubtopics(ctx, sub.ID, []string{"FA", "Flutter"}); err != nil {
		t.Fatalf("AddSubtopics: %v", err)
	}
	if _, err := s.UpdateSubjectSchedule(ctx, sub.ID, "2025-04", study.SchedulePatch{
		MonthlyGoal: ptr(12),
		PlannedDays: []string{"2025-04-01"},
	}); err != nil {
		t.Fatalf("UpdateSubjectSchedule: %v", err)
	}

	dup, err := s.DuplicateMonth(ctx, m.ID)
	if err != nil || dup == nil {
		t.Fatalf("DuplicateMonth: %v %v", dup, err)
	}
	if dup.Name != "Cardiologia (Cópia)" || dup.ID == m.ID || dup.Year != m.Year {
		t.Fatalf("unexpected copy: %+v", dup)
	}
	copies := s.SubjectsByMonth(dup.ID)
	if len(copies) != 1 {
		t.Fatalf("expected one copied subject, got %d", len(copies))
	}
	cp := copies[0]
	if cp.ID == sub.ID || cp.Title != sub.Title || len(cp.Subtopics) != 2 {
		t.Fatalf("bad copy: %+v", cp)
	}
	if cp.Schedules["2025-04"].MonthlyGoal != 12 {
		t.Fatalf("schedule not copied: %+v", cp.Schedules)
	}

	// mutating the copy must not leak into the original
	if _, err := s.ToggleSubjectPlannedDay(ctx, cp.ID, "2025-04", "2025-04-02"); err != nil {
		t.Fatalf("toggle day: %v", err)
	}
	if err := s.ToggleSubtopic(ctx, cp.ID, cp.Subtopics[0].ID); err != nil {
		t.Fatalf("toggle subtopic: %v", err)
	}
	orig, _ := s.Schedule(sub.ID, "2025-04")
	if len(orig.PlannedDays) != 1 {
		t.Fatalf("original planned days changed: %v", orig.PlannedDays)
	}
	origSub, _ := s.Subject(sub.ID)
	if origSub.Subtopics[0].IsCompleted {
		t.Fatalf("original subtopic changed")
	}

	none, err := s.DuplicateMonth(ctx, "missing")
	if err != nil || none != nil {
		t.Fatalf("unknown month should be a no-op, got %v %v", none, err)
	}
}

func TestActiveScheduleMonthsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	for i := 0; i < 3; i++ {
		if err := s.AddActiveScheduleMonth(ctx, "2025-05"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := s.AddActiveScheduleMonth(ctx, "2025-06"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := s.ActiveScheduleMonths(); !reflect.DeepEqual(got, []string{"2025-05", "2025-06"}) {
		t.Fatalf("unexpected months: %v", got)
	}
	if err := s.RemoveActiveScheduleMonth(ctx, "2025-05"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := s.ActiveScheduleMonths(); !reflect.DeepEqual(got, []string{"2025-06"}) {
		t.Fatalf("unexpected months after remove: %v", got)
	}
	if err := s.AddActiveScheduleMonth(ctx, "May"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("bad key accepted: %v", err)
	}
}

func TestAddSubjectValidatesMonth(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.AddSubject(context.Background(), "Cirurgia", "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	sub := mustSubject(t, s, "  Cirurgia  ", "")
	if sub.Title != "Cirurgia" || sub.MonthID != "" || sub.Color == "" {
		t.Fatalf("unexpected subject: %+v", sub)
	}
	if sub.CreatedAt != fixedNow.UnixMilli() {
		t.Fatalf("createdAt: got=%d", sub.CreatedAt)
	}
	if sub.Subtopics == nil || sub.Schedules == nil {
		t.Fatalf("collections should be empty, not nil")
	}
}

func TestAddSubjectsBatchSkipsBlanks(t *testing.T) {
	s, p := newTestStore(t)
	m := mustMonth(t, s, "R1")
	saves := len(p.saves)
	got, err := s.AddSubjects(context.Background(), []string{"Clínica Médica", "", "  ", "Pediatria"}, m.ID)
	if err != nil {
		t.Fatalf("AddSubjects: %v", err)
	}
	if len(got) != 2 || got[1].Title != "Pediatria" || got[0].MonthID != m.ID {
		t.Fatalf("unexpected batch: %+v", got)
	}
	if len(p.saves) != saves+1 {
		t.Fatalf("batch should persist once, saves=%d", len(p.saves)-saves)
	}
}

func TestToggleSubjectInMonthResetsOnReschedule(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	sub := mustSubject(t, s, "Ortopedia", "")

	on, err := s.ToggleSubjectInMonth(ctx, sub.ID, "2025-03")
	if err != nil || !on {
		t.Fatalf("first toggle: %v %v", on, err)
	}
	sched, ok := s.Schedule(sub.ID, "2025-03")
	if !ok || sched.MonthlyGoal != 0 || sched.PlannedDays == nil || len(sched.PlannedDays) != 0 {
		t.Fatalf("default schedule wrong: %+v %v", sched, ok)
	}
	if _, err := s.UpdateSubjectSchedule(ctx, sub.ID, "2025-03", study.SchedulePatch{MonthlyGoal: ptr(10)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	off, err := s.ToggleSubjectInMonth(ctx, sub.ID, "2025-03")
	if err != nil || off {
		t.Fatalf("second toggle: %v %v", off, err)
	}
	if _, ok := s.Schedule(sub.ID, "2025-03"); ok {
		t.Fatalf("entry should be deleted, not zeroed")
	}
	got, _ := s.Subject(sub.ID)
	if _, ok := got.Schedules["2025-03"]; ok {
		t.Fatalf("nested view still has the key")
	}

	if _, err := s.ToggleSubjectInMonth(ctx, sub.ID, "2025-03"); err != nil {
		t.Fatalf("third toggle: %v", err)
	}
	sched, _ = s.Schedule(sub.ID, "2025-03")
	if sched.MonthlyGoal != 0 {
		t.Fatalf("goal should reset to 0, got %d", sched.MonthlyGoal)
	}
}

func TestUpdateSubjectScheduleMerges(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	sub := mustSubject(t, s, "Ginecologia", "")

	if _, err := s.UpdateSubjectSchedule(ctx, sub.ID, "2025-03", study.SchedulePatch{Notes: ptr("rever")}); err != nil {
		t.Fatalf("create via update: %v", err)
	}
	if _, err := s.ToggleSubjectPlannedDay(ctx, sub.ID, "2025-03", "2025-03-04"); err != nil {
		t.Fatalf("toggle day: %v", err)
	}
	updated, err := s.UpdateSubjectSchedule(ctx, sub.ID, "2025-03", study.SchedulePatch{
		MonthlyGoal: ptr(8),
		IsCompleted: ptr(true),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := study.SubjectSchedule{MonthlyGoal: 8, PlannedDays: []string{"2025-03-04"}, IsCompleted: true, Notes: "rever"}
	if !reflect.DeepEqual(*updated, want) {
		t.Fatalf("merge: got=%+v want=%+v", *updated, want)
	}

	if _, err := s.UpdateSubjectSchedule(ctx, sub.ID, "2025-03", study.SchedulePatch{MonthlyGoal: ptr(-1)}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("negative goal accepted: %v", err)
	}
	none, err := s.UpdateSubjectSchedule(ctx, "missing", "2025-03", study.SchedulePatch{})
	if err != nil || none != nil {
		t.Fatalf("unknown subject should be no-op: %v %v", none, err)
	}
}

func TestTogglePlannedDayNeverDuplicates(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	sub := mustSubject(t, s, "Infectologia", "")
	sequence := []string{"2025-03-01", "2025-03-02", "2025-03-01", "2025-03-01", "2025-03-03", "2025-03-02", "2025-03-02"}
	for _, d := range sequence {
		if _, err := s.ToggleSubjectPlannedDay(ctx, sub.ID, "2025-03", d); err != nil {
			t.Fatalf("toggle %s: %v", d, err)
		}
		sched, _ := s.Schedule(sub.ID, "2025-03")
		seen := map[string]bool{}
		for _, day := range sched.PlannedDays {
			if seen[day] {
				t.Fatalf("duplicate planned day %s in %v", day, sched.PlannedDays)
			}
			seen[day] = true
		}
	}
	sched, _ := s.Schedule(sub.ID, "2025-03")
	if !reflect.DeepEqual(sched.PlannedDays, []string{"2025-03-01", "2025-03-03", "2025-03-02"}) {
		t.Fatalf("final planned days: %v", sched.PlannedDays)
	}
}

func TestPlannedDaysMustBelongToMonth(t *testing.T) {
	ctx := context.Background()
	s, p := newTestStore(t)
	sub := mustSubject(t, s, "Hematologia", "")
	saves := len(p.saves)

	if _, err := s.ToggleSubjectPlannedDay(ctx, sub.ID, "2025-03", "2025-04-01"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("toggle outside month: %v", err)
	}
	if _, err := s.UpdateSubjectSchedule(ctx, sub.ID, "2025-02", study.SchedulePatch{
		PlannedDays: []string{"2025-02-28", "2025-02-29"},
	}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("update with a day outside the month: %v", err)
	}
	if _, ok := s.Schedule(sub.ID, "2025-02"); ok {
		t.Fatalf("rejected update created a schedule")
	}
	if len(p.saves) != saves {
		t.Fatalf("rejected calls saved: %d", len(p.saves)-saves)
	}

	got, err := s.UpdateSubjectSchedule(ctx, sub.ID, "2025-02", study.SchedulePatch{PlannedDays: []string{"2025-02-28"}})
	if err != nil || !got.HasPlannedDay("2025-02-28") {
		t.Fatalf("valid update: %+v err=%v", got, err)
	}
}

func TestToggleSubtopic(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	sub := mustSubject(t, s, "Neurologia", "")
	st, err := s.AddSubtopic(ctx, sub.ID, "AVC")
	if err != nil || st == nil {
		t.Fatalf("AddSubtopic: %v %v", st, err)
	}
	if err := s.ToggleSubtopic(ctx, sub.ID, st.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	got, _ := s.Subject(sub.ID)
	if !got.Subtopics[0].IsCompleted {
		t.Fatalf("subtopic not completed")
	}
	if err := s.ToggleSubtopic(ctx, sub.ID, "missing"); err != nil {
		t.Fatalf("unknown subtopic: %v", err)
	}
	if err := s.ToggleSubtopic(ctx, "missing", st.ID); err != nil {
		t.Fatalf("unknown subject: %v", err)
	}
	blank, err := s.AddSubtopic(ctx, sub.ID, " ")
	if err != nil || blank != nil {
		t.Fatalf("blank subtopic should be skipped: %v %v", blank, err)
	}
}

func TestRecordSessionDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	sub := mustSubject(t, s, "Pediatria", "")
	sess := mustSession(t, s, study.SessionRecord{SubjectID: sub.ID, Duration: 1200})
	// 21:30 at UTC-3 is already the next day in UTC
	if sess.Date != "2025-03-10" {
		t.Fatalf("date should be local today, got %s", sess.Date)
	}
	if sess.StartTime != fixedNow.UnixMilli() || sess.Status != study.SessionCompleted || sess.ID == "" {
		t.Fatalf("defaults not applied: %+v", sess)
	}

	explicit := mustSession(t, s, study.SessionRecord{
		SubjectID: sub.ID, Duration: 0, Date: "2025-01-02", StartTime: 42, Status: study.SessionIncomplete,
	})
	if explicit.Date != "2025-01-02" || explicit.StartTime != 42 || explicit.Status != study.SessionIncomplete {
		t.Fatalf("explicit fields overwritten: %+v", explicit)
	}
}

func TestSessionValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	sub := mustSubject(t, s, "Pediatria", "")
	cases := []struct {
		name string
		run  func() error
		want error
	}{
		{"negative duration", func() error {
			_, err := s.RecordSession(ctx, study.SessionRecord{SubjectID: sub.ID, Duration: -1})
			return err
		}, apperr.ErrInvalidArgument},
		{"bad date", func() error {
			_, err := s.RecordSession(ctx, study.SessionRecord{SubjectID: sub.ID, Duration: 1, Date: "10/03/2025"})
			return err
		}, apperr.ErrInvalidArgument},
		{"bad status", func() error {
			_, err := s.RecordSession(ctx, study.SessionRecord{SubjectID: sub.ID, Duration: 1, Status: "abandoned"})
			return err
		}, apperr.ErrInvalidArgument},
		{"unknown subject", func() error {
			_, err := s.RecordSession(ctx, study.SessionRecord{SubjectID: "missing", Duration: 1})
			return err
		}, apperr.ErrNotFound},
		{"manual zero", func() error {
			_, err := s.AddManualSession(ctx, sub.ID, 0, "")
			return err
		}, apperr.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v want %v", err, tc.want)
			}
		})
	}
	if len(s.Sessions()) != 0 {
		t.Fatalf("rejected sessions were stored")
	}
}

func TestManualSessionAndStatus(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	sub := mustSubject(t, s, "Pediatria", "")
	sess, err := s.AddManualSession(ctx, sub.ID, 5400, "2025-03-01")
	if err != nil {
		t.Fatalf("AddManualSession: %v", err)
	}
	if err := s.UpdateSessionStatus(ctx, sess.ID, study.SessionIncomplete); err != nil {
		t.Fatalf("UpdateSessionStatus: %v", err)
	}
	got := s.Sessions()[0]
	if got.Status != study.SessionIncomplete || got.Duration != 5400 || got.Date != "2025-03-01" {
		t.Fatalf("status change altered other fields: %+v", got)
	}
	if err := s.UpdateSessionStatus(ctx, sess.ID, "paused"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("bad status accepted: %v", err)
	}
	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if len(s.Sessions()) != 0 {
		t.Fatalf("session not deleted")
	}
}

func TestUpdateSettingsMerges(t *testing.T) {
	s, _ := newTestStore(t)
	got, err := s.UpdateSettings(context.Background(), study.SettingsPatch{UserName: ptr("Ana")})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	want := study.DefaultSettings()
	want.UserName = "Ana"
	if got != want {
		t.Fatalf("merge: got=%+v want=%+v", got, want)
	}
	bad := study.HealthDegree("Law")
	if _, err := s.UpdateSettings(context.Background(), study.SettingsPatch{HealthDegree: &bad}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("unknown degree accepted: %v", err)
	}
}

func TestPersistFailureKeepsState(t *testing.T) {
	s, p := newTestStore(t)
	p.fail = errors.New("disk full")
	m, err := s.AddMonth(context.Background(), "Cardiologia", 2025)
	if !errors.Is(err, apperr.ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}
	if _, ok := s.Month(m.ID); !ok {
		t.Fatalf("in-memory mutation lost on persist failure")
	}
	p.fail = nil
	if _, err := s.AddSubject(context.Background(), "Arritmias", m.ID); err != nil {
		t.Fatalf("store unusable after failure: %v", err)
	}
	last := p.saves[len(p.saves)-1]
	if len(last.Months) != 1 || len(last.Subjects) != 1 {
		t.Fatalf("next save should carry full state: %+v", last)
	}
}

func TestSnapshotLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	m := mustMonth(t, s, "Cardiologia")
	sub := mustSubject(t, s, "Arritmias", m.ID)
	if _, err := s.ToggleSubjectPlannedDay(ctx, sub.ID, "2025-03", "2025-03-05"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	mustSession(t, s, study.SessionRecord{SubjectID: sub.ID, Duration: 60})

	snap := s.Snapshot()
	restored := New(WithSnapshot(snap))
	if !reflect.DeepEqual(restored.Snapshot(), snap) {
		t.Fatalf("restored snapshot differs:\n got=%+v\nwant=%+v", restored.Snapshot(), snap)
	}
	sched, ok := restored.Schedule(sub.ID, "2025-03")
	if !ok || sched.PlannedDays[0] != "2025-03-05" {
		t.Fatalf("flat schedule map not rebuilt: %+v", sched)
	}
}

package history

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

type fakeStore struct {
	sessions map[string]*models.WorkoutSession
	sets     []models.SetEntry
	records  map[string]*models.PersonalRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: make(map[string]*models.WorkoutSession),
		records:  make(map[string]*models.PersonalRecord),
	}
}

func (f *fakeStore) InsertSession(_ context.Context, s *models.WorkoutSession) error {
	if _, ok := f.sessions[s.Date]; ok {
		return storage.ErrSessionExists
	}
	cp := *s
	f.sessions[s.Date] = &cp
	return nil
}

func (f *fakeStore) UpdateSession(_ context.Context, s *models.WorkoutSession) error {
	cp := *s
	f.sessions[s.Date] = &cp
	return nil
}

func (f *fakeStore) InsertSets(_ context.Context, rows []models.SetEntry) (int64, error) {
	var n int64
	for _, r := range rows {
		dup := false
		for _, have := range f.sets {
			if have.SessionDate == r.SessionDate && have.Exercise == r.Exercise && have.SetNumber == r.SetNumber {
				dup = true
				break
			}
		}
		if !dup {
			f.sets = append(f.sets, r)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) GetPersonalRecord(_ context.Context, userID int, exercise, equipment string) (*models.PersonalRecord, error) {
	key := exercise + "/" + equipment
	if rec, ok := f.records[key]; ok {
		cp := *rec
		return &cp, nil
	}
	return &models.PersonalRecord{UserID: userID, Exercise: exercise, Equipment: equipment}, nil
}

func (f *fakeStore) UpsertPersonalRecord(_ context.Context, rec *models.PersonalRecord) error {
	cp := *rec
	f.records[rec.Exercise+"/"+rec.Equipment] = &cp
	return nil
}

func testImporter(store Store) *Importer {
	return NewImporter(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestImportReplaysHistory(t *testing.T) {
	store := newFakeStore()
	res, err := testImporter(store).Import(context.Background(), 1, strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if res.SessionsReceived != 2 || res.SessionsInserted != 2 {
		t.Errorf("sessions = %+v, want 2 received and inserted", res)
	}
	if res.SetsInserted != 4 {
		t.Errorf("sets inserted = %d, want 4", res.SetsInserted)
	}

	sess := store.sessions["2025-01-02"]
	if sess == nil || sess.CompletedAt == nil {
		t.Fatalf("imported session = %+v, want completed", sess)
	}
	if sess.Status() != models.StatusCompleted {
		t.Errorf("status = %q, want completed", sess.Status())
	}

	rec := store.records["Bench Press/Barbell"]
	if rec == nil {
		t.Fatal("no bench press record created")
	}
	if rec.MaxWeight.Weight != 135 || rec.MaxWeight.Reps != 8 {
		t.Errorf("max weight mark = %+v", rec.MaxWeight)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	store := newFakeStore()
	imp := testImporter(store)

	if _, err := imp.Import(context.Background(), 1, strings.NewReader(sampleCSV)); err != nil {
		t.Fatalf("first import: %v", err)
	}
	res, err := imp.Import(context.Background(), 1, strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	if res.SessionsInserted != 0 || res.SessionsSkipped != 2 {
		t.Errorf("second run = %+v, want all sessions skipped", res)
	}
	if res.SetsInserted != 0 {
		t.Errorf("second run sets inserted = %d, want 0", res.SetsInserted)
	}
	if res.RecordsUpdated != 0 {
		t.Errorf("second run records updated = %d, want 0", res.RecordsUpdated)
	}
}

func TestImportBadCSV(t *testing.T) {
	store := newFakeStore()
	if _, err := testImporter(store).Import(context.Background(), 1, strings.NewReader("not,a,history\nx,y,z\n")); err == nil {
		t.Error("Import of junk CSV = nil error, want failure")
	}
	if len(store.sets) != 0 {
		t.Errorf("sets written from junk import = %d, want 0", len(store.sets))
	}
}

package upload

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const testCSV = `date,workout,exercise,equipment,set,weight,unit,reps
2025-01-02,Push Day,Bench Press,Barbell,1,135,lbs,8
`

func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer state.Close()

	done, err := state.IsImported("a.csv", 100, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if done {
		t.Error("fresh file reported as imported")
	}

	if err := state.MarkImported("a.csv", 100, "abc", 2, 10); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}

	done, err = state.IsImported("a.csv", 100, "abc")
	if err != nil {
		t.Fatalf("IsImported after mark: %v", err)
	}
	if !done {
		t.Error("marked file not reported as imported")
	}

	// A changed file (different hash) must be sent again.
	done, err = state.IsImported("a.csv", 100, "other")
	if err != nil {
		t.Fatalf("IsImported changed hash: %v", err)
	}
	if done {
		t.Error("changed file reported as imported")
	}
}

func TestUploaderRun(t *testing.T) {
	var received int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/import/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("api key header = %q", r.Header.Get("X-API-Key"))
		}
		received++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sessions_received":1,"sessions_inserted":1,"sets_inserted":1}`))
	}))
	defer ts.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "export.csv"), []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	u := New(NewClient(ts.URL, "test-key"), state, dir, false, log)

	stats, err := u.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.FilesScanned != 1 || stats.FilesUploaded != 1 {
		t.Errorf("stats = %+v, want 1 scanned and uploaded", stats)
	}
	if received != 1 {
		t.Errorf("server received %d uploads, want 1", received)
	}

	// Second run skips the already-imported file.
	stats, err = u.Run()
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if stats.FilesSkipped != 1 || stats.FilesUploaded != 0 {
		t.Errorf("second run stats = %+v, want skip", stats)
	}
	if received != 1 {
		t.Errorf("server received %d uploads after rerun, want 1", received)
	}
}

func TestUploaderDryRun(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "export.csv"), []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	u := New(NewClient("http://unused.invalid", "k"), state, dir, true, log)

	stats, err := u.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.FilesUploaded != 1 {
		t.Errorf("dry run stats = %+v", stats)
	}

	// Dry run must not mark anything as imported.
	hash, err := HashFile(filepath.Join(dir, "export.csv"))
	if err != nil {
		t.Fatal(err)
	}
	info, _ := os.Stat(filepath.Join(dir, "export.csv"))
	done, err := state.IsImported("export.csv", info.Size(), hash)
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("dry run recorded state")
	}
}

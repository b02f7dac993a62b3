package summary

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/logsieve/logsieve/pkg/engine"
)

func TestRun_Counts(t *testing.T) {
	dir := t.TempDir()
	lines := []string{
		`{"type":"request","request":{"operation":"update","path":"auth/jwt/login","mount_point":"auth/jwt/"}}`,
		`{"type":"response","request":{"operation":"update","path":"auth/jwt/login"}}`,
		`{"type":"request","request":{"operation":"read","path":"secret/data/app"}}`,
		`{"type":"request","request":{"operation":"read","path":"secret/data/app"},"error":"permission denied"}`,
		`{"bad json`,
	}
	path := filepath.Join(dir, "audit.json")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := Run(context.Background(), []string{path}, engine.Options{ProgressWriter: io.Discard})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	s := report.Summary
	if s.Requests != 3 || s.Responses != 1 {
		t.Errorf("Requests/Responses = %d/%d, want 3/1", s.Requests, s.Responses)
	}
	if s.Logins != 1 {
		t.Errorf("Logins = %d, want 1", s.Logins)
	}
	if s.Errors != 1 {
		t.Errorf("Errors = %d, want 1", s.Errors)
	}
	if s.ByOperation["read"] != 2 || s.ByOperation["update"] != 1 {
		t.Errorf("ByOperation = %v, want read=2 update=1", s.ByOperation)
	}
	if report.Stats.Skipped() != 1 {
		t.Errorf("Skipped = %d, want 1", report.Stats.Skipped())
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestTopPaths(t *testing.T) {
	s := &Summary{ByPath: map[string]int64{
		"secret/a": 5,
		"secret/b": 9,
		"secret/c": 5,
		"secret/d": 1,
	}}

	top := s.TopPaths(3)
	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	if top[0].Path != "secret/b" {
		t.Errorf("top[0] = %v, want secret/b", top[0])
	}
	// Equal counts tie-break by path.
	if top[1].Path != "secret/a" || top[2].Path != "secret/c" {
		t.Errorf("ties = %v %v, want secret/a then secret/c", top[1], top[2])
	}
}

func TestRun_MultiFileMergeEqualsSequential(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 4; i++ {
		path := filepath.Join(dir, fmt.Sprintf("day%d.json", i))
		line := fmt.Sprintf(`{"type":"request","request":{"operation":"read","path":"secret/s%d"}}`, i)
		if err := os.WriteFile(path, []byte(line+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		files = append(files, path)
	}

	seq, err := Run(context.Background(), files, engine.Options{Mode: engine.ModeSequential, ProgressWriter: io.Discard})
	if err != nil {
		t.Fatal(err)
	}
	par, err := Run(context.Background(), files, engine.Options{Mode: engine.ModeParallel, ProgressWriter: io.Discard})
	if err != nil {
		t.Fatal(err)
	}

	if seq.Summary.Requests != par.Summary.Requests || seq.Summary.Requests != 4 {
		t.Errorf("Requests seq=%d par=%d, want both 4", seq.Summary.Requests, par.Summary.Requests)
	}
	for k, v := range seq.Summary.ByPath {
		if par.Summary.ByPath[k] != v {
			t.Errorf("ByPath[%q] seq=%d par=%d", k, v, par.Summary.ByPath[k])
		}
	}
}

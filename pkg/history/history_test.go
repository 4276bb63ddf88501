// Tests for the append-only log and bounded reads.
package history

import (
	"os"
	"path/filepath"
	"testing"

	loggerpkg "electron/pkg/logger"
)

func TestReadAllMissingFile(t *testing.T) {
	turns, err := ReadAll(filepath.Join(t.TempDir(), "history.json"))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected empty history, got %d turns", len(turns))
	}
}

func TestReadAllEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	turns, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected empty history, got %d turns", len(turns))
	}
}

func TestAppendReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	log, err := Open(path, loggerpkg.NopLogger{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	want := []Turn{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
		{Role: RoleUser, Content: "how are you?"},
	}
	for _, turn := range want {
		if err := log.Append(turn); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d turns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("turn %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestReadTailLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	log, err := Open(path, loggerpkg.NopLogger{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	contents := []string{"a", "b", "c", "d", "e"}
	for _, content := range contents {
		if err := log.Append(Turn{Role: RoleUser, Content: content}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	for k := 1; k <= len(contents)+2; k++ {
		tail, err := ReadTail(path, k)
		if err != nil {
			t.Fatalf("ReadTail(%d): %v", k, err)
		}
		wantLen := k
		if wantLen > len(all) {
			wantLen = len(all)
		}
		if len(tail) != wantLen {
			t.Fatalf("ReadTail(%d): expected %d turns, got %d", k, wantLen, len(tail))
		}
		for i := range tail {
			if tail[i] != all[len(all)-wantLen+i] {
				t.Fatalf("ReadTail(%d): turn %d is %+v, want %+v", k, i, tail[i], all[len(all)-wantLen+i])
			}
		}
	}

	// Non-positive limit reads everything.
	tail, err := ReadTail(path, 0)
	if err != nil {
		t.Fatalf("ReadTail(0): %v", err)
	}
	if len(tail) != len(all) {
		t.Fatalf("ReadTail(0): expected %d turns, got %d", len(all), len(tail))
	}
}

func TestCorruptLineFailsWholeRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	raw := `{"role":"user","content":"hi"}
not json
{"role":"assistant","content":"hello"}
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := ReadAll(path); err == nil {
		t.Fatal("expected error for corrupt line")
	}

	// The log handle degrades corrupt history to empty, not partial.
	log, err := Open(path, loggerpkg.NopLogger{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()
	if turns := log.All(); len(turns) != 0 {
		t.Fatalf("expected empty turns for corrupt log, got %d", len(turns))
	}
	if turns := log.Tail(1); len(turns) != 0 {
		t.Fatalf("expected empty tail for corrupt log, got %d", len(turns))
	}
}

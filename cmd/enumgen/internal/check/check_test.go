package check

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/broady/smartenum/cmd/enumgen/internal/gen"
	"github.com/broady/smartenum/enumgen/sink"
)

func TestCompare(t *testing.T) {
	ctx := context.Background()
	disk := sink.NewMemorySink()
	if err := disk.WriteFile(ctx, "same.go", []byte("package farm\n")); err != nil {
		t.Fatal(err)
	}
	if err := disk.WriteFile(ctx, "old.go", []byte("package farm\n\nconst A = 1\n")); err != nil {
		t.Fatal(err)
	}

	t.Run("up to date", func(t *testing.T) {
		var out bytes.Buffer
		stale, err := Compare(ctx, &out, disk, map[string][]byte{"same.go": []byte("package farm\n")})
		if err != nil {
			t.Fatal(err)
		}
		if stale || out.Len() != 0 {
			t.Errorf("stale = %v, output = %q", stale, out.String())
		}
	})

	t.Run("changed", func(t *testing.T) {
		var out bytes.Buffer
		stale, err := Compare(ctx, &out, disk, map[string][]byte{"old.go": []byte("package farm\n\nconst A = 2\n")})
		if err != nil {
			t.Fatal(err)
		}
		if !stale {
			t.Error("changed file not reported stale")
		}
		for _, want := range []string{"✗ old.go is out of date", "--- old.go (on disk)", "+++ old.go (generated)", "-const A = 1", "+const A = 2"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("diff missing %q:\n%s", want, out.String())
			}
		}
	})

	t.Run("missing", func(t *testing.T) {
		var out bytes.Buffer
		stale, err := Compare(ctx, &out, disk, map[string][]byte{"new.go": []byte("package farm\n")})
		if err != nil {
			t.Fatal(err)
		}
		if !stale || !strings.Contains(out.String(), "✗ new.go is missing") {
			t.Errorf("stale = %v, output = %q", stale, out.String())
		}
	})
}

func TestCmd_Run(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}
	t.Setenv("GOWORK", "off")

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/farm\n\ngo 1.21\n"), 0644); err != nil {
		t.Fatal(err)
	}
	def := filepath.Join(root, "animals.yaml")
	write := func(content string) {
		t.Helper()
		if err := os.WriteFile(def, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	write("package: farm\nenums:\n  - name: Animal\n    symbols: [Cat, Dog]\n")
	if err := (&gen.Cmd{File: def, Stdout: &bytes.Buffer{}}).Run(logger); err != nil {
		t.Fatalf("gen: %v", err)
	}

	var out bytes.Buffer
	if err := (&Cmd{File: def, Stdout: &out}).Run(logger); err != nil {
		t.Fatalf("check after gen: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "✓ 1 enums up to date") {
		t.Errorf("output = %q", out.String())
	}

	write("package: farm\nenums:\n  - name: Animal\n    symbols: [Cat, Dog, Cow]\n")
	out.Reset()
	err := (&Cmd{File: def, Stdout: &out}).Run(logger)
	if !errors.Is(err, ErrStale) {
		t.Fatalf("check after edit: error = %v, want ErrStale", err)
	}
	if !strings.Contains(out.String(), "AnimalCow") {
		t.Errorf("diff does not mention the new constant:\n%s", out.String())
	}
}

package layout

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/wippyai/offset/schema"
)

// Each testdata archive holds a schema.yaml with one structure and either
// the expected plan dump or the expected error message.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no golden files")
	}

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			sections := make(map[string]string)
			for _, f := range ar.Files {
				sections[f.Name] = string(f.Data)
			}

			schemas, err := schema.Parse([]byte(sections["schema.yaml"]))
			if err != nil {
				t.Fatalf("parse schema: %v", err)
			}
			if len(schemas) != 1 {
				t.Fatalf("got %d schemas, want 1", len(schemas))
			}

			plan, err := Build(schemas[0])

			if want, ok := sections["error"]; ok {
				if err == nil {
					t.Fatalf("expected error %q, got plan:\n%s", want, plan)
				}
				if want = strings.TrimSpace(want); !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not contain %q", err.Error(), want)
				}
				return
			}

			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if diff := cmp.Diff(sections["plan"], plan.String()); diff != "" {
				t.Errorf("plan mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

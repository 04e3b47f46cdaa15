package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/infra/catalog"
)

func TestDefault_IsIndexed(t *testing.T) {
	c := catalog.Default()
	if len(c.Tasks) == 0 || len(c.Corridors) == 0 || len(c.Supermoce) == 0 {
		t.Fatal("default catalog is incomplete")
	}

	task, err := c.TaskByID("mat-01")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if task.Corridor != "matematyka" {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestDefault_PrereqsResolve(t *testing.T) {
	c := catalog.Default()

	// Every prerequisite in the built-in set must name a real task,
	// otherwise the gated content could never unlock.
	for _, cor := range c.Corridors {
		for _, id := range cor.Prerequisites {
			if _, err := c.TaskByID(id); err != nil {
				t.Errorf("corridor %s prerequisite %s: %v", cor.ID, id, err)
			}
		}
	}
	for _, s := range c.Supermoce {
		for _, id := range s.Prerequisites {
			if _, err := c.TaskByID(id); err != nil {
				t.Errorf("supermoc %s prerequisite %s: %v", s.ID, id, err)
			}
		}
	}
}

func TestLoad_MissingDirUsesDefault(t *testing.T) {
	c, err := catalog.Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Tasks) != len(catalog.Default().Tasks) {
		t.Error("expected the built-in task set")
	}
}

func TestLoad_FileOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	tasks := `[{"id": "custom-1", "corridor": "matematyka", "q": "2+2?", "xp": 1}]`
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte(tasks), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Tasks) != 1 || c.Tasks[0].ID != "custom-1" {
		t.Errorf("expected file to replace tasks, got %d tasks", len(c.Tasks))
	}
	if _, err := c.TaskByID("custom-1"); err != nil {
		t.Errorf("index not rebuilt after load: %v", err)
	}
	// Corridors fall back to the built-ins when their file is absent.
	if len(c.Corridors) == 0 {
		t.Error("expected default corridors to survive")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := catalog.Load(dir); err == nil {
		t.Error("expected error for malformed tasks.json")
	}
}

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenEnergyPlatform/omi/internal/specs"
)

func TestScanDetectsMetadataDocuments(t *testing.T) {
	dir := t.TempDir()
	s, err := specs.GetFamily("OEP-1.6")
	if err != nil {
		t.Fatalf("example: %v", err)
	}
	jsonPath := filepath.Join(dir, "nested", "table.json")
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsonPath, s.ExampleBytes(), 0o644); err != nil {
		t.Fatalf("failed to create metadata file: %v", err)
	}
	yamlPath := filepath.Join(dir, "legacy.yml")
	yamlContent := "title: Legacy table\nmetadata_version: \"1.3\"\n"
	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to create yaml file: %v", err)
	}
	// Not metadata: no version declared
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name": "x"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	// Broken JSON mentioning a version
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"metadata_version": `), 0o644); err != nil {
		t.Fatal(err)
	}
	// Skipped directory
	gitDir := filepath.Join(dir, ".git")
	if err := os.MkdirAll(gitDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(gitDir, "meta.json"), s.ExampleBytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	docs, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d: %+v", len(docs), docs)
	}
	if docs[0].Path != yamlPath || docs[0].Version != "OEP-1.3.0" || docs[0].Format != "yaml" || docs[0].Name != "Legacy table" {
		t.Errorf("unexpected yaml document: %+v", docs[0])
	}
	if docs[1].Path != jsonPath || docs[1].Version != "OEP-1.6.0" || docs[1].Name != "oep_metadata_table_example_v160" {
		t.Errorf("unexpected json document: %+v", docs[1])
	}
	if got := Paths(docs); got[0] != yamlPath || got[1] != jsonPath {
		t.Errorf("Paths = %v", got)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}
}

// Package scanner finds metadata documents below a directory.
package scanner

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/version"
)

// Document is a metadata file detected during a scan.
type Document struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Format  string `json:"format"`
}

var documentExtensions = map[string]string{
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
}

// versionPattern is a cheap check for a declared version before a file is
// decoded in full.
var versionPattern = regexp.MustCompile(`"?metadata_?[vV]ersion"?\s*:`)

// skipDirs are never descended into.
var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"_examples":    {},
}

// Scan walks root and returns the documents declaring a metadata version,
// sorted by path. Files that cannot be read or decoded are skipped.
func Scan(root string) ([]Document, error) {
	var results []Document

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		format, ok := documentExtensions[strings.ToLower(filepath.Ext(d.Name()))]
		if !ok {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil || !versionPattern.Match(data) {
			return nil // skip unreadable files silently
		}
		doc, decErr := decode(data, format)
		if decErr != nil {
			return nil
		}
		v, verErr := version.Of(doc)
		if verErr != nil {
			return nil
		}
		name := doc.GetString("name")
		if name == "" {
			name = doc.GetString("title")
		}
		results = append(results, Document{
			Path:    path,
			Name:    name,
			Version: v.String(),
			Format:  format,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

func decode(data []byte, format string) (*document.Dict, error) {
	if format == "yaml" {
		return document.DecodeYAML(data)
	}
	return document.DecodeJSON(data)
}

// Paths returns the paths of docs.
func Paths(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Path
	}
	return out
}

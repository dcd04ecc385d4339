// Package version parses OEMetadata version tags such as "OEP-1.5.2" or
// "OEMetadata-2.0" and extracts them from documents.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/document"
)

// Known metadata formats, oldest generation first.
const (
	FormatOEP        = "OEP"
	FormatOEMetadata = "OEMetadata"
)

var formatRank = map[string]int{
	FormatOEP:        0,
	FormatOEMetadata: 1,
}

// Version is a parsed metadata version.
type Version struct {
	Format string
	Major  int
	Minor  int
	Patch  int

	hasPatch bool
}

// Parse reads "<Format>-<major>.<minor>[.<patch>]". A bare "1.3" is the
// legacy OEP-1.3 tag found in the top-level metadata_version key.
func Parse(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Version{}, apperr.Metadataf("empty metadata version")
	}
	format, nums, ok := strings.Cut(raw, "-")
	if !ok {
		format, nums = FormatOEP, raw
	}
	if _, known := formatRank[format]; !known {
		return Version{}, apperr.Metadataf("unsupported metadata format %q in version %q", format, raw)
	}
	parts := strings.Split(nums, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, apperr.Metadataf("malformed metadata version %q", raw)
	}
	ints := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, apperr.Metadataf("malformed metadata version %q", raw)
		}
		ints[i] = n
	}
	v := Version{Format: format, Major: ints[0], Minor: ints[1]}
	if len(ints) == 3 {
		v.Patch = ints[2]
		v.hasPatch = true
	}
	return v, nil
}

// MustParse is Parse for constant tags.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// HasPatch reports whether the tag carried a patch component.
func (v Version) HasPatch() bool { return v.hasPatch }

// Canonical returns v with an explicit patch component.
func (v Version) Canonical() Version {
	v.hasPatch = true
	return v
}

// String renders the canonical tag; a missing patch renders as 0.
func (v Version) String() string {
	return fmt.Sprintf("%s-%d.%d.%d", v.Format, v.Major, v.Minor, v.Patch)
}

// Family renders "<Format>-<major>.<minor>", the key for templates.
func (v Version) Family() string {
	return fmt.Sprintf("%s-%d.%d", v.Format, v.Major, v.Minor)
}

// SameFamily reports whether both versions share format, major and minor.
func (v Version) SameFamily(o Version) bool {
	return v.Format == o.Format && v.Major == o.Major && v.Minor == o.Minor
}

// Compare orders by format generation, then major, minor and patch.
func (v Version) Compare(o Version) int {
	if d := formatRank[v.Format] - formatRank[o.Format]; d != 0 {
		return sign(d)
	}
	if d := v.Major - o.Major; d != 0 {
		return sign(d)
	}
	if d := v.Minor - o.Minor; d != 0 {
		return sign(d)
	}
	return sign(v.Patch - o.Patch)
}

// Matches reports whether v satisfies a requested target: exact when the
// target has a patch, same family otherwise.
func (v Version) Matches(target Version) bool {
	if target.hasPatch {
		return v.Canonical() == target.Canonical()
	}
	return v.SameFamily(target)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Of extracts the version declared by a document:
// metaMetadata.metadataVersion, else the legacy metadata_version key.
func Of(doc *document.Dict) (Version, error) {
	if doc == nil {
		return Version{}, apperr.Metadataf("metadata document is empty")
	}
	if v, ok := doc.Lookup("metaMetadata.metadataVersion"); ok {
		if s := document.AsString(v); s != "" {
			return Parse(s)
		}
	}
	if s := doc.GetString("metadata_version"); s != "" {
		return Parse(s)
	}
	return Version{}, apperr.Metadataf("could not extract metadata version from document")
}

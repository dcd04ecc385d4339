package specs

import (
	"errors"
	"testing"

	"github.com/OpenEnergyPlatform/omi/internal/version"
)

func TestFamilies(t *testing.T) {
	got := Families()
	want := []string{"OEP-1.3", "OEP-1.4", "OEP-1.5", "OEP-1.6", "OEMetadata-2.0"}
	if len(got) != len(want) {
		t.Fatalf("Families() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Families()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTemplatesDeclareTheirVersion(t *testing.T) {
	for _, fam := range Families() {
		t.Run(fam, func(t *testing.T) {
			tpl, err := Template(version.MustParse(fam))
			if err != nil {
				t.Fatalf("Template: %v", err)
			}
			v, err := version.Of(tpl)
			if err != nil {
				t.Fatalf("version.Of(template): %v", err)
			}
			if v.Family() != fam {
				t.Fatalf("template declares %s, want family %s", v, fam)
			}
		})
	}
}

func TestTemplateIsFreshCopy(t *testing.T) {
	a, err := Template(version.MustParse("OEP-1.4.0"))
	if err != nil {
		t.Fatal(err)
	}
	a.Set("name", "mutated")

	b, err := Template(version.MustParse("OEP-1.4.0"))
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsNull("name") {
		t.Fatalf("template mutated across calls: %v", b.GetString("name"))
	}
}

func TestMissingArtifacts(t *testing.T) {
	if _, err := GetFamily("OEP-9.9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	s, err := GetFamily("OEMetadata-2.0")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Example(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing example, got %v", err)
	}
}

func TestExamplesDecode(t *testing.T) {
	for _, fam := range []string{"OEP-1.3", "OEP-1.4", "OEP-1.5", "OEP-1.6"} {
		doc, err := Example(fam)
		if err != nil {
			t.Fatalf("%s: %v", fam, err)
		}
		v, err := version.Of(doc)
		if err != nil {
			t.Fatalf("%s: %v", fam, err)
		}
		if v.Family() != fam {
			t.Fatalf("%s example declares %s", fam, v)
		}
	}
}

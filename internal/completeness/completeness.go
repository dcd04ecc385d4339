// Package completeness scores how much of a metadata document is filled
// in, using the field registry of its version family.
package completeness

import (
	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/metadata"
	"github.com/OpenEnergyPlatform/omi/internal/version"
)

type Report struct {
	DocID  string
	Family string

	Score float64 // 0..1

	Passed int
	Total  int

	MissingRequired []metadata.Key
	MissingOptional []metadata.Key

	// Resources holds one report per resource, in document order.
	Resources []ResourceReport
}

type ResourceReport struct {
	Resource string

	Score  float64 // 0..1
	Passed int
	Total  int

	MissingRequired []metadata.Key
	MissingOptional []metadata.Key
}

// Check detects the version family of doc and scores it.
func Check(doc *document.Dict) (Report, error) {
	v, err := version.Of(doc)
	if err != nil {
		return Report{}, err
	}
	family := v.Family()
	if metadata.Registry(family) == nil {
		return Report{}, apperr.Metadataf("no completeness registry for %s", family)
	}
	return CheckFamily(doc, family), nil
}

// CheckFamily scores doc against the registry of family.
func CheckFamily(doc *document.Dict, family string) Report {
	docID := doc.GetString("name")
	if docID == "" {
		docID = doc.GetString("title")
	}
	s := score(metadata.Registry(family), docID, doc)
	report := Report{
		DocID:           docID,
		Family:          family,
		Score:           s.score(),
		Passed:          s.passed,
		Total:           s.total,
		MissingRequired: s.missingReq,
		MissingOptional: s.missingOpt,
	}
	for _, item := range doc.GetList("resources") {
		res, ok := item.(*document.Dict)
		if !ok {
			continue
		}
		report.Resources = append(report.Resources, CheckResource(res, family))
	}
	logf("%s score=%.1f%% resources=%d", family, report.Score*100, len(report.Resources))
	return report
}

// CheckResource scores a single resource object.
func CheckResource(res *document.Dict, family string) ResourceReport {
	name := res.GetString("name")
	s := score(metadata.ResourceRegistry(family), name, res)
	return ResourceReport{
		Resource:        name,
		Score:           s.score(),
		Passed:          s.passed,
		Total:           s.total,
		MissingRequired: s.missingReq,
		MissingOptional: s.missingOpt,
	}
}

type tally struct {
	earned, max float64
	passed      int
	total       int
	missingReq  []metadata.Key
	missingOpt  []metadata.Key
}

func (t tally) score() float64 {
	if t.max <= 0 {
		return 0
	}
	return t.earned / t.max
}

func score(specs []metadata.FieldSpec, docID string, d *document.Dict) tally {
	var t tally
	for _, spec := range specs {
		if spec.Weight <= 0 {
			continue
		}
		t.total++
		t.max += spec.Weight
		if spec.Present(docID, d) {
			t.passed++
			t.earned += spec.Weight
			continue
		}
		if spec.Required {
			t.missingReq = append(t.missingReq, spec.Key)
		} else {
			t.missingOpt = append(t.missingOpt, spec.Key)
		}
	}
	return t
}

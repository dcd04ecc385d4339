package metadata

import (
	"github.com/OpenEnergyPlatform/omi/internal/document"
)

// FieldSpec describes how one field contributes to completeness.
type FieldSpec struct {
	Key      Key
	Weight   float64
	Required bool
}

// Present checks the spec against a dataset or resource object and logs
// the outcome under docID.
func (s FieldSpec) Present(docID string, d *document.Dict) bool {
	ok := Present(d, s.Key)
	if !ok {
		vals := Values(d, s.Key)
		var sample any
		if len(vals) > 0 {
			sample = vals[0]
		}
		logf(docID, "present %s ok=false value=%s", s.Key, summarizeValue(sample))
		return false
	}
	logf(docID, "present %s ok=true", s.Key)
	return true
}

// Version families with a registry.
const (
	FamilyOEP13        = "OEP-1.3"
	FamilyOEP14        = "OEP-1.4"
	FamilyOEP15        = "OEP-1.5"
	FamilyOEP16        = "OEP-1.6"
	FamilyOEMetadata20 = "OEMetadata-2.0"
)

func req(k Key, w float64) FieldSpec { return FieldSpec{Key: k, Weight: w, Required: true} }
func opt(k Key, w float64) FieldSpec { return FieldSpec{Key: k, Weight: w} }

var oepDataset = []FieldSpec{
	req(Name, 1),
	req(Title, 1),
	req(Identifier, 1),
	opt(Description, 1),
	opt(Language, 0.5),
	opt(Keywords, 0.5),
	opt(PublicationDate, 0.5),
	opt(ContextHomepage, 0.25),
	opt(ContextContact, 0.5),
	opt(ContextFundingAgency, 0.25),
	opt(SpatialExtent, 0.5),
	opt(SpatialResolution, 0.25),
	opt(TemporalReferenceDate, 0.5),
	opt(Sources, 0.5),
	req(Licenses, 1),
	req(LicenseNames, 0.5),
	opt(Contributors, 0.5),
	opt(ReviewBadge, 0.25),
	req(MetadataVersion, 1),
}

var oepResource = []FieldSpec{
	req(ResourceName, 1),
	opt(ResourcePath, 0.5),
	opt(ResourceFormat, 0.5),
	opt(ResourceEncoding, 0.25),
	req(ResourceFields, 1),
	opt(ResourceFieldDescriptions, 0.5),
	opt(ResourceFieldTypes, 0.5),
	opt(ResourcePrimaryKey, 0.5),
}

// Registry returns the dataset level specs of a version family such as
// "OEP-1.4". Unknown families yield nil.
func Registry(family string) []FieldSpec {
	switch family {
	case FamilyOEP13:
		return []FieldSpec{
			req(Title, 1),
			opt(Description, 1),
			opt(Language, 0.5),
			opt(SpatialExtent, 0.5),
			opt(LegacyTemporalReferenceDate, 0.5),
			opt(Sources, 0.5),
			req(LegacyLicense, 1),
			opt(Contributors, 0.5),
			req(LegacyMetadataVersion, 1),
		}
	case FamilyOEP14:
		return append([]FieldSpec(nil), oepDataset...)
	case FamilyOEP15, FamilyOEP16:
		return append(append([]FieldSpec(nil), oepDataset...), opt(Subject, 0.5))
	case FamilyOEMetadata20:
		return []FieldSpec{
			req(Name, 1),
			opt(Title, 1),
			opt(Description, 1),
			opt(LinkedDataID, 0.5),
			req(MetadataVersion, 1),
		}
	}
	return nil
}

// ResourceRegistry returns the specs checked against every resource.
func ResourceRegistry(family string) []FieldSpec {
	switch family {
	case FamilyOEP13:
		return []FieldSpec{
			req(ResourceName, 1),
			opt(ResourceFormat, 0.5),
			req(LegacyResourceFields, 1),
			opt(LegacyFieldDescriptions, 0.5),
		}
	case FamilyOEP14:
		return append([]FieldSpec(nil), oepResource...)
	case FamilyOEP15, FamilyOEP16:
		return append(append([]FieldSpec(nil), oepResource...), opt(ResourceFieldIsAbout, 0.25))
	case FamilyOEMetadata20:
		return []FieldSpec{
			req(ResourceName, 1),
			opt(ResourceTitle, 0.5),
			opt(ResourcePath, 0.5),
			opt(ResourceDescription, 0.5),
			opt(ResourceLanguages, 0.25),
			opt(ResourceKeywords, 0.25),
			opt(ResourceSubject, 0.25),
			opt(ResourcePublicationDate, 0.25),
			opt(ResourceHomepage, 0.25),
			opt(ResourceExtentName, 0.25),
			opt(ResourceReferenceDate, 0.25),
			opt(ResourceSources, 0.5),
			req(ResourceLicenses, 1),
			opt(ResourceContributors, 0.5),
			opt(ResourceFormat, 0.25),
			req(ResourceFields, 1),
			opt(ResourceFieldDescriptions, 0.5),
			opt(ResourcePrimaryKey, 0.5),
		}
	}
	return nil
}

// Families lists the families with a registry, oldest first.
func Families() []string {
	return []string{FamilyOEP13, FamilyOEP14, FamilyOEP15, FamilyOEP16, FamilyOEMetadata20}
}

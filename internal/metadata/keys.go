package metadata

// Key identifies a document field by its path, such as "context.homepage".
// A "[]" suffix on a segment stands for every entry of a list, as in
// "schema.fields[].description".
type Key string

func (k Key) String() string { return string(k) }

const (
	// Dataset level, OEP generations.
	Name                  Key = "name"
	Title                 Key = "title"
	Identifier            Key = "id"
	Description           Key = "description"
	Language              Key = "language"
	Subject               Key = "subject"
	Keywords              Key = "keywords"
	PublicationDate       Key = "publicationDate"
	ContextHomepage       Key = "context.homepage"
	ContextContact        Key = "context.contact"
	ContextFundingAgency  Key = "context.fundingAgency"
	SpatialExtent         Key = "spatial.extent"
	SpatialResolution     Key = "spatial.resolution"
	TemporalReferenceDate Key = "temporal.referenceDate"
	Sources               Key = "sources"
	Licenses              Key = "licenses"
	LicenseNames          Key = "licenses[].name"
	Contributors          Key = "contributors"
	ReviewBadge           Key = "review.badge"
	MetadataVersion       Key = "metaMetadata.metadataVersion"

	// Dataset level, legacy OEP-1.3 layout.
	LegacyTemporalReferenceDate Key = "temporal.reference_date"
	LegacyLicense               Key = "license.id"
	LegacyMetadataVersion       Key = "metadata_version"

	// Dataset level, OEMetadata-2.0.
	LinkedDataID Key = "@id"
)

// Resource level keys are relative to one entry of "resources".
const (
	ResourceName              Key = "name"
	ResourceTitle             Key = "title"
	ResourcePath              Key = "path"
	ResourceDescription       Key = "description"
	ResourceFormat            Key = "format"
	ResourceEncoding          Key = "encoding"
	ResourceLanguages         Key = "languages"
	ResourceKeywords          Key = "keywords"
	ResourceSubject           Key = "subject[].@id"
	ResourcePublicationDate   Key = "publicationDate"
	ResourceHomepage          Key = "context.homepage"
	ResourceExtentName        Key = "spatial.extent.name"
	ResourceReferenceDate     Key = "temporal.referenceDate"
	ResourceSources           Key = "sources[].title"
	ResourceLicenses          Key = "licenses[].name"
	ResourceContributors      Key = "contributors[].title"
	ResourceFields            Key = "schema.fields"
	ResourceFieldDescriptions Key = "schema.fields[].description"
	ResourceFieldTypes        Key = "schema.fields[].type"
	ResourceFieldIsAbout      Key = "schema.fields[].isAbout"
	ResourcePrimaryKey        Key = "schema.primaryKey"
	LegacyResourceFields      Key = "fields"
	LegacyFieldDescriptions   Key = "fields[].description"
)

// Package rdf maps the metadata model onto a DCAT-based RDF graph and
// back. Graphs are rendered as Turtle or N-Triples.
package rdf

import (
	"strings"

	"github.com/google/uuid"

	graph "github.com/OpenEnergyPlatform/omi/internal/rdf"
)

var (
	dcatDataset      = graph.NSDCAT.Term("Dataset")
	dcatDistribution = graph.NSDCAT.Term("Distribution")
	dcatKeyword      = graph.NSDCAT.Term("keyword")
	dcatContactPoint = graph.NSDCAT.Term("contactPoint")
	dcatStartDate    = graph.NSDCAT.Term("startDate")
	dcatEndDate      = graph.NSDCAT.Term("endDate")
	dcatTemporalRes  = graph.NSDCAT.Term("temporalResolution")
	dcatSpatialRes   = graph.NSDCAT.Term("spatialResolutionInMeters")
	dcatAccessURL    = graph.NSDCAT.Term("accessURL")
	dcatDistribute   = graph.NSDCAT.Term("distribution")

	dctIdentifier    = graph.NSDCT.Term("identifier")
	dctTitle         = graph.NSDCT.Term("title")
	dctDescription   = graph.NSDCT.Term("description")
	dctLanguage      = graph.NSDCT.Term("language")
	dctIssued        = graph.NSDCT.Term("issued")
	dctSpatial       = graph.NSDCT.Term("spatial")
	dctTemporal      = graph.NSDCT.Term("temporal")
	dctSource        = graph.NSDCT.Term("source")
	dctLicense       = graph.NSDCT.Term("license")
	dctLicenseDoc    = graph.NSDCT.Term("LicenseDocument")
	dctDate          = graph.NSDCT.Term("date")
	dctConformsTo    = graph.NSDCT.Term("conformsTo")
	dctFormat        = graph.NSDCT.Term("format")
	dcatdeGeocoding  = graph.NSDCATDE.Term("geocodingDescription")
	foafHomepage     = graph.NSFOAF.Term("homepage")
	foafPerson       = graph.NSFOAF.Term("Person")
	foafName         = graph.NSFOAF.Term("name")
	foafMbox         = graph.NSFOAF.Term("mbox")
	foafPage         = graph.NSFOAF.Term("page")
	schemaName       = graph.NSSchema.Term("name")
	rdfsSeeAlso      = graph.NSRDFS.Term("seeAlso")
	rdfsComment      = graph.NSRDFS.Term("comment")
	spdxLicenseText  = graph.NSSPDX.Term("licenseText")
	admsVersion      = graph.NSADMS.Term("version")
	oeoContext       = graph.NSOEO.Term("has_context")
	oeoDocumentation = graph.NSOEO.Term("has_documentation")
	oeoSourceCode    = graph.NSOEO.Term("has_sourcecode")
	oeoGrantNumber   = graph.NSOEO.Term("has_grant_number")
	oeoFunder        = graph.NSOEO.Term("has_funding_agency")
	oeoFunderLogo    = graph.NSOEO.Term("has_funding_agency_logo")
	oeoPublisherLogo = graph.NSOEO.Term("has_publisher_logo")
	oeoExtent        = graph.NSOEO.Term("has_spatial_extent")
	oeoReferenceDate = graph.NSOEO.Term("has_reference_date")
	oeoTimeseries    = graph.NSOEO.Term("has_timeseries")
	oeoAlignment     = graph.NSOEO.Term("has_alignment")
	oeoAggregation   = graph.NSOEO.Term("has_aggregation_type")
	oeoInstruction   = graph.NSOEO.Term("has_instruction")
	oeoAttribution   = graph.NSOEO.Term("has_attribution")
	oeoContribution  = graph.NSOEO.Term("has_contribution")
	oeoContributor   = graph.NSOEO.Term("has_contributor")
	oeoObject        = graph.NSOEO.Term("has_object")
	oeoEncoding      = graph.NSOEO.Term("has_encoding")
	oeoSchema        = graph.NSOEO.Term("has_schema")
	oeoField         = graph.NSOEO.Term("has_field")
	oeoPrimaryKey    = graph.NSOEO.Term("has_primary_key")
	oeoForeignKey    = graph.NSOEO.Term("has_foreign_key")
	oeoReference     = graph.NSOEO.Term("has_reference")
	oeoSource        = graph.NSOEO.Term("has_source")
	oeoTarget        = graph.NSOEO.Term("has_target")
	oeoDatatype      = graph.NSOEO.Term("has_datatype")
	oeoUnit          = graph.NSOEO.Term("has_unit")
	oeoDialect       = graph.NSOEO.Term("has_dialect")
	oeoDelimiter     = graph.NSOEO.Term("has_delimiter")
	oeoDecimalSep    = graph.NSOEO.Term("has_decimal_separator")
	oeoReview        = graph.NSOEO.Term("has_review")
	oeoBadge         = graph.NSOEO.Term("has_badge")
	oeoMetaLicense   = graph.NSOEO.Term("has_metadata_license")
	oeoMetaComment   = graph.NSOEO.Term("has_meta_comment")
	oeoCommentMeta   = graph.NSOEO.Term("comment_metadata")
	oeoCommentDates  = graph.NSOEO.Term("comment_dates")
	oeoCommentUnits  = graph.NSOEO.Term("comment_units")
	oeoCommentLangs  = graph.NSOEO.Term("comment_languages")
	oeoCommentLics   = graph.NSOEO.Term("comment_licenses")
	oeoCommentReview = graph.NSOEO.Term("comment_review")
	oeoCommentNull   = graph.NSOEO.Term("comment_null")
)

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// datasetIRI names the dataset node. Identifiers that are not web
// addresses get a name-based UUID URN.
func datasetIRI(identifier string) graph.Term {
	if isHTTP(identifier) {
		return graph.IRI(identifier)
	}
	return graph.IRI("urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(identifier)).String())
}

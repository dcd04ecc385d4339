package rdf

// Namespace is an IRI prefix.
type Namespace string

// Term returns the IRI of local inside ns.
func (ns Namespace) Term(local string) Term { return IRI(string(ns) + local) }

const (
	NSRDF    Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS   Namespace = "http://www.w3.org/2000/01/rdf-schema#"
	NSXSD    Namespace = "http://www.w3.org/2001/XMLSchema#"
	NSFOAF   Namespace = "http://xmlns.com/foaf/0.1/"
	NSDCT    Namespace = "http://purl.org/dc/terms/"
	NSDCAT   Namespace = "http://www.w3.org/ns/dcat#"
	NSDCATDE Namespace = "http://dcat-ap.de/def/dcatde/"
	NSOEO    Namespace = "http://openenergy-platform.org/ontology/oeo/"
	NSSchema Namespace = "http://schema.org/"
	NSSKOS   Namespace = "http://www.w3.org/2004/02/skos/core#"
	NSADMS   Namespace = "http://www.w3.org/ns/adms#"
	NSSPDX   Namespace = "http://spdx.org/rdf/terms#"
)

// Type is rdf:type.
var Type = NSRDF.Term("type")

// DefaultPrefixes are bound on every new graph.
var DefaultPrefixes = map[string]Namespace{
	"rdf":    NSRDF,
	"rdfs":   NSRDFS,
	"xsd":    NSXSD,
	"foaf":   NSFOAF,
	"dct":    NSDCT,
	"dcat":   NSDCAT,
	"dcatde": NSDCATDE,
	"oeo":    NSOEO,
	"schema": NSSchema,
	"skos":   NSSKOS,
	"adms":   NSADMS,
	"spdx":   NSSPDX,
}

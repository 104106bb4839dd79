// Package vocabulary holds the namespace IRIs and terms used to read artist
// data out of the triple graph.
package vocabulary

// Namespace base IRIs.
const (
	FOAF = "http://xmlns.com/foaf/0.1/"
	MO   = "http://purl.org/ontology/mo/"
	BIO  = "http://purl.org/vocab/bio/0.1/"
	OWL  = "http://www.w3.org/2002/07/owl#"
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	REL  = "http://purl.org/vocab/relationship/"
	DC   = "http://purl.org/dc/elements/1.1/"
)

// Term is a local name within a namespace.
type Term struct {
	Namespace string
	Local     string
}

// IRI returns the full IRI of the term.
func (t Term) IRI() string {
	return t.Namespace + t.Local
}

var (
	FOAFName = Term{FOAF, "name"}
	FOAFMade = Term{FOAF, "made"}

	MOMyspace    = Term{MO, "myspace"}
	MOMusicGroup = Term{MO, "MusicGroup"}
	MOSoloArtist = Term{MO, "SoloMusicArtist"}

	BIOEvent     = Term{BIO, "event"}
	BIODate      = Term{BIO, "date"}
	BIOBirth     = Term{BIO, "Birth"}
	BIOFormation = Term{BIO, "Formation"}

	OWLSameAs = Term{OWL, "sameAs"}
	RDFType   = Term{RDF, "type"}

	RELCloseFriendOf = Term{REL, "closeFriendOf"}

	DCTitle = Term{DC, "title"}
)

// Prefixes maps the conventional prefix of each namespace to its IRI.
var Prefixes = map[string]string{
	"foaf": FOAF,
	"mo":   MO,
	"bio":  BIO,
	"owl":  OWL,
	"rdf":  RDF,
	"rel":  REL,
	"dc":   DC,
}

// Expand turns a prefixed name such as "foaf:name" into a full IRI. Values
// without a known prefix are returned unchanged.
func Expand(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] != ':' {
			continue
		}
		if ns, ok := Prefixes[name[:i]]; ok {
			return ns + name[i+1:]
		}
		return name
	}
	return name
}

package model

import "strings"

// Entity is an artist loaded from the graph. It is read-only once the
// resolver hands it out.
type Entity struct {
	URI     string   `json:"uri"`
	Name    string   `json:"name,omitempty"`
	Types   []string `json:"types,omitempty"`
	SameAs  []string `json:"same_as,omitempty"`
	Profile string   `json:"profile,omitempty"`
}

// HasType reports whether typeIRI is one of the entity's rdf:type values.
func (e *Entity) HasType(typeIRI string) bool {
	for _, t := range e.Types {
		if t == typeIRI {
			return true
		}
	}
	return false
}

// CrossReference returns the first sameAs URI containing marker, or "".
func (e *Entity) CrossReference(marker string) string {
	for _, u := range e.SameAs {
		if strings.Contains(u, marker) {
			return u
		}
	}
	return ""
}

// Subject returns the reference facts are stated about.
func (e *Entity) Subject() Subject {
	return Subject{URI: e.URI, Name: e.Name}
}

// Subject is what a fact is about.
type Subject struct {
	URI  string `json:"uri"`
	Name string `json:"name,omitempty"`
}

// Display returns the name, or the URI for entities without one.
func (s Subject) Display() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URI
}

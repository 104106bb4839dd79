// Package resolve loads artist entities from the triple graph.
package resolve

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/agenthands/bore/internal/core/common"
	"github.com/agenthands/bore/internal/core/model"
	"github.com/agenthands/bore/internal/driver"
	"github.com/agenthands/bore/internal/vocabulary"
)

// ErrResolution marks a failure of the graph store. It aborts a whole run.
var ErrResolution = errors.New("graph store unavailable")

// Unavailable wraps a graph error and marks it ErrResolution.
func Unavailable(err error, op string) error {
	return errors.Mark(errors.Wrap(err, op), ErrResolution)
}

type Resolver struct {
	Driver          driver.GraphDriver
	Attributes      map[vocabulary.Attribute]vocabulary.AttributeSpec
	ArtistURIMarker string

	// Secondary is consulted by ArtistURIForSameAs when the primary store has
	// no answer. May be nil.
	Secondary driver.GraphDriver

	byPredicate map[string]vocabulary.Attribute
	predicates  []string
}

func NewResolver(d driver.GraphDriver, secondary driver.GraphDriver, artistURIMarker string) *Resolver {
	r := &Resolver{
		Driver:          d,
		Secondary:       secondary,
		Attributes:      vocabulary.ArtistAttributes,
		ArtistURIMarker: artistURIMarker,
	}
	r.byPredicate = vocabulary.ByPredicate(r.Attributes)
	for p := range r.byPredicate {
		r.predicates = append(r.predicates, p)
	}
	sort.Strings(r.predicates)
	return r
}

// Resolve loads the name, types, cross references and profile link of uri.
// A URI with no matching triples yields an entity with only its URI set.
func (r *Resolver) Resolve(ctx context.Context, uri string) (*model.Entity, error) {
	if uri == "" {
		return nil, errors.New("entity uri is empty")
	}

	rows, err := driver.Query(ctx, r.Driver, "entity_attributes", driver.EntityAttributesQuery, map[string]interface{}{
		"uri":        uri,
		"predicates": r.predicates,
	})
	if err != nil {
		return nil, Unavailable(err, "resolve "+uri)
	}

	e := &model.Entity{URI: uri}
	for _, row := range rows {
		if len(row) < 2 || row[1] == "" {
			continue
		}
		attr, ok := r.byPredicate[row[0]]
		if !ok {
			continue
		}
		r.assign(e, attr, row[1])
	}
	e.Types = common.Dedupe(e.Types)
	e.SameAs = common.Dedupe(e.SameAs)

	return e, nil
}

func (r *Resolver) assign(e *model.Entity, attr vocabulary.Attribute, value string) {
	single := r.Attributes[attr].Cardinality == vocabulary.Single
	switch attr {
	case vocabulary.AttrName:
		if !single || e.Name == "" {
			e.Name = value
		}
	case vocabulary.AttrProfile:
		if !single || e.Profile == "" {
			e.Profile = value
		}
	case vocabulary.AttrType:
		e.Types = append(e.Types, value)
	case vocabulary.AttrSameAs:
		e.SameAs = append(e.SameAs, value)
	}
}

// IsGroup reports whether the entity is typed mo:MusicGroup.
func IsGroup(e *model.Entity) bool {
	return e.HasType(vocabulary.MOMusicGroup.IRI())
}

// ArtistURIForSameAs finds the artist whose owl:sameAs points at xref, such
// as a DBpedia resource. Only subjects containing the artist URI marker count.
func (r *Resolver) ArtistURIForSameAs(ctx context.Context, xref string) (string, bool, error) {
	uri, ok, err := r.sameAs(ctx, r.Driver, xref)
	if err != nil || ok || r.Secondary == nil {
		return uri, ok, err
	}
	return r.sameAs(ctx, r.Secondary, xref)
}

func (r *Resolver) sameAs(ctx context.Context, d driver.GraphDriver, xref string) (string, bool, error) {
	rows, err := driver.Query(ctx, d, "same_as", driver.SameAsSubjectsQuery, map[string]interface{}{
		"uri":     xref,
		"same_as": vocabulary.OWLSameAs.IRI(),
	})
	if err != nil {
		return "", false, Unavailable(err, "same-as lookup "+xref)
	}

	for _, row := range rows {
		if u := row.First(); strings.Contains(u, r.ArtistURIMarker) {
			return u, true, nil
		}
	}
	return "", false, nil
}

package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/bore/internal/core/facts"
	"github.com/agenthands/bore/internal/core/model"
	"github.com/agenthands/bore/internal/core/resolve"
	"github.com/agenthands/bore/internal/driver"
	"github.com/agenthands/bore/internal/vocabulary"
)

const fugazi = "http://www.bbc.co.uk/music/artists/9b51f964-2f24-46f4-9550-0f260dcdad48#artist"

type stubAssembler struct {
	facts []model.Fact
	err   error
	seen  *model.Entity
}

func (s *stubAssembler) Assemble(ctx context.Context, e *model.Entity) ([]model.Fact, error) {
	s.seen = e
	return s.facts, s.err
}

func newBore(d *driver.MockDriver, a facts.Assembler) *Bore {
	b := NewBore(d, resolve.NewResolver(d, nil, "www.bbc.co.uk/music/artists/"), a, nil)
	b.NewID = func() string { return "run-1" }
	return b
}

func TestStatements(t *testing.T) {
	d := driver.NewMockDriver().
		On(driver.EntityAttributesQuery, []string{"predicate", "value"},
			[]interface{}{vocabulary.FOAFName.IRI(), "Fugazi"},
			[]interface{}{vocabulary.RDFType.IRI(), vocabulary.MOMusicGroup.IRI()},
			[]interface{}{vocabulary.MOMyspace.IRI(), "http://www.myspace.com/fugazi"},
		).
		On(driver.FormationDateQuery, []string{"date"}, []interface{}{"1987"})
	b := newBore(d, facts.NewArtistAssembler(d, nil, nil))

	report, err := b.Statements(context.Background(), fugazi)

	require.NoError(t, err)
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, model.Subject{URI: fugazi, Name: "Fugazi"}, report.Subject)
	assert.Equal(t, []string{
		"Fugazi has a profile at www.myspace.com/fugazi",
		"Fugazi was formed in 1987",
	}, report.Sentences())
}

func TestStatements_UnknownArtist(t *testing.T) {
	d := driver.NewMockDriver()
	a := &stubAssembler{}
	b := newBore(d, a)

	report, err := b.Statements(context.Background(), "http://example.org/nobody")

	require.NoError(t, err)
	assert.Empty(t, report.Facts)
	assert.Equal(t, "http://example.org/nobody", a.seen.URI)
	assert.Equal(t, "http://example.org/nobody", report.Subject.Display())
}

func TestStatements_ResolutionFails(t *testing.T) {
	d := driver.NewMockDriver().Fail(driver.EntityAttributesQuery, fmt.Errorf("connection refused"))
	a := &stubAssembler{}
	b := newBore(d, a)

	_, err := b.Statements(context.Background(), fugazi)

	require.Error(t, err)
	assert.True(t, errors.Is(err, resolve.ErrResolution))
	assert.Nil(t, a.seen, "assembly does not start without an entity")
}

func TestStatements_AssemblyFails(t *testing.T) {
	a := &stubAssembler{err: resolve.Unavailable(fmt.Errorf("timeout"), "catalog")}
	b := newBore(driver.NewMockDriver(), a)

	report, err := b.Statements(context.Background(), fugazi)

	assert.Nil(t, report)
	assert.True(t, errors.Is(err, resolve.ErrResolution))
}

func TestLoadTriples(t *testing.T) {
	d := driver.NewMockDriver()
	b := newBore(d, &stubAssembler{})

	n, err := b.LoadTriples(context.Background(), []model.Triple{
		{Subject: fugazi, Predicate: vocabulary.FOAFName.IRI(), Object: "Fugazi", Literal: true},
		{Subject: fugazi, Predicate: vocabulary.RDFType.IRI(), Object: vocabulary.MOMusicGroup.IRI()},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)

	executed := d.Executed()
	require.Len(t, executed, 2)
	assert.Equal(t, driver.SaveLiteralTripleQuery, executed[0].Query)
	assert.Equal(t, "Fugazi", executed[0].Params["object"])
	assert.Equal(t, driver.SaveResourceTripleQuery, executed[1].Query)
	assert.Equal(t, vocabulary.RDFType.IRI(), executed[1].Params["predicate"])
}

func TestLoadTriples_ExpandsPrefixedNames(t *testing.T) {
	d := driver.NewMockDriver()
	b := newBore(d, &stubAssembler{})

	n, err := b.LoadTriples(context.Background(), []model.Triple{
		{Subject: fugazi, Predicate: "foaf:name", Object: "mo:not-expanded", Literal: true},
		{Subject: fugazi, Predicate: "rdf:type", Object: "mo:MusicGroup"},
		{Subject: fugazi, Predicate: "http://example.org/custom", Object: "unknown:thing"},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, n)

	executed := d.Executed()
	require.Len(t, executed, 3)
	assert.Equal(t, vocabulary.FOAFName.IRI(), executed[0].Params["predicate"])
	assert.Equal(t, "mo:not-expanded", executed[0].Params["object"], "literals are stored as given")
	assert.Equal(t, vocabulary.RDFType.IRI(), executed[1].Params["predicate"])
	assert.Equal(t, vocabulary.MOMusicGroup.IRI(), executed[1].Params["object"])
	assert.Equal(t, "http://example.org/custom", executed[2].Params["predicate"])
	assert.Equal(t, "unknown:thing", executed[2].Params["object"])
}

func TestLoadTriples_InvalidWritesNothing(t *testing.T) {
	d := driver.NewMockDriver()
	b := newBore(d, &stubAssembler{})

	n, err := b.LoadTriples(context.Background(), []model.Triple{
		{Subject: fugazi, Predicate: vocabulary.FOAFName.IRI(), Object: "Fugazi", Literal: true},
		{Subject: fugazi, Object: "no predicate"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "triple 1")
	assert.Zero(t, n)
	assert.Empty(t, d.Executed())
}

func TestLoadTriples_StoreDown(t *testing.T) {
	d := driver.NewMockDriver().Fail(driver.SaveResourceTripleQuery, fmt.Errorf("disk full"))
	b := newBore(d, &stubAssembler{})

	n, err := b.LoadTriples(context.Background(), []model.Triple{
		{Subject: fugazi, Predicate: vocabulary.FOAFName.IRI(), Object: "Fugazi", Literal: true},
		{Subject: fugazi, Predicate: vocabulary.RDFType.IRI(), Object: vocabulary.MOMusicGroup.IRI()},
	})

	assert.Equal(t, 1, n)
	assert.True(t, errors.Is(err, resolve.ErrResolution))
}

func TestDeleteSubject(t *testing.T) {
	d := driver.NewMockDriver()
	b := newBore(d, &stubAssembler{})

	require.NoError(t, b.DeleteSubject(context.Background(), fugazi))
	calls := d.Calls(driver.DeleteSubjectQuery)
	require.Len(t, calls, 1)
	assert.Equal(t, fugazi, calls[0]["uri"])
}

func TestBuildIndices(t *testing.T) {
	d := driver.NewMockDriver()
	b := newBore(d, &stubAssembler{})
	assert.NoError(t, b.BuildIndices(context.Background()))

	d.Err = fmt.Errorf("no permission")
	assert.Error(t, b.BuildIndices(context.Background()))
}

// Package core wires entity resolution and fact assembly into runs, and loads
// triples into the graph.
package core

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/bore/internal/core/facts"
	"github.com/agenthands/bore/internal/core/model"
	"github.com/agenthands/bore/internal/core/resolve"
	"github.com/agenthands/bore/internal/driver"
	"github.com/agenthands/bore/internal/logger"
	"github.com/agenthands/bore/internal/vocabulary"
)

type Bore struct {
	Driver    driver.GraphDriver
	Resolver  *resolve.Resolver
	Assembler facts.Assembler
	Logger    *zap.Logger

	// CrossReferenceMarker picks the owl:sameAs link reported with each run.
	CrossReferenceMarker string

	// NewID generates run IDs.
	NewID func() string
}

func NewBore(d driver.GraphDriver, resolver *resolve.Resolver, assembler facts.Assembler, log *zap.Logger) *Bore {
	return &Bore{
		Driver:    d,
		Resolver:  resolver,
		Assembler: assembler,
		Logger:    logger.OrNop(log),
		NewID:     uuid.NewString,
	}
}

// Report is the outcome of one run for one artist.
type Report struct {
	RunID   string        `json:"run_id"`
	Subject model.Subject `json:"subject"`
	SameAs  string        `json:"same_as,omitempty"`
	Facts   []model.Fact  `json:"facts"`
}

// Sentences renders each fact as a sentence.
func (r *Report) Sentences() []string {
	out := make([]string, 0, len(r.Facts))
	for _, f := range r.Facts {
		out = append(out, f.String())
	}
	return out
}

func (b *Bore) BuildIndices(ctx context.Context) error {
	return b.Driver.BuildIndices(ctx)
}

// Statements resolves uri and assembles every fact known about it. The only
// errors returned are graph failures, marked resolve.ErrResolution, and an
// empty uri.
func (b *Bore) Statements(ctx context.Context, uri string) (*Report, error) {
	runID := b.NewID()
	start := time.Now()
	log := b.Logger.With(zap.String("run_id", runID), zap.String("uri", uri))

	e, err := b.Resolver.Resolve(ctx, uri)
	if err != nil {
		log.Error("resolution failed", zap.Error(err))
		return nil, err
	}

	fs, err := b.Assembler.Assemble(ctx, e)
	if err != nil {
		log.Error("fact assembly failed", zap.Error(err))
		return nil, err
	}

	log.Info("statements assembled",
		zap.String("name", e.Name),
		zap.Int("facts", len(fs)),
		zap.Duration("took", time.Since(start)),
	)
	return &Report{
		RunID:   runID,
		Subject: e.Subject(),
		SameAs:  e.CrossReference(b.CrossReferenceMarker),
		Facts:   fs,
	}, nil
}

// ArtistURIForSameAs maps a cross reference such as a DBpedia URI to the
// artist it describes.
func (b *Bore) ArtistURIForSameAs(ctx context.Context, xref string) (string, bool, error) {
	return b.Resolver.ArtistURIForSameAs(ctx, xref)
}

// LoadTriples validates every triple before writing any, then saves them in
// order. Prefixed names such as "foaf:name" are expanded to full IRIs; literal
// objects are stored as given. It returns how many were written.
func (b *Bore) LoadTriples(ctx context.Context, triples []model.Triple) (int, error) {
	triples = expandTriples(triples)
	for i, t := range triples {
		if err := t.Validate(); err != nil {
			return 0, errors.Wrapf(err, "triple %d", i)
		}
	}

	for i, t := range triples {
		query := driver.SaveResourceTripleQuery
		if t.Literal {
			query = driver.SaveLiteralTripleQuery
		}
		_, err := b.Driver.ExecuteQuery(ctx, query, map[string]interface{}{
			"subject":   t.Subject,
			"predicate": t.Predicate,
			"object":    t.Object,
		})
		if err != nil {
			return i, resolve.Unavailable(err, "save triple")
		}
	}

	b.Logger.Info("triples loaded", zap.Int("count", len(triples)))
	return len(triples), nil
}

func expandTriples(triples []model.Triple) []model.Triple {
	out := make([]model.Triple, len(triples))
	for i, t := range triples {
		t.Subject = vocabulary.Expand(t.Subject)
		t.Predicate = vocabulary.Expand(t.Predicate)
		if !t.Literal {
			t.Object = vocabulary.Expand(t.Object)
		}
		out[i] = t
	}
	return out
}

// DeleteSubject removes a resource and every triple hanging off it.
func (b *Bore) DeleteSubject(ctx context.Context, uri string) error {
	if _, err := b.Driver.ExecuteQuery(ctx, driver.DeleteSubjectQuery, map[string]interface{}{"uri": uri}); err != nil {
		return resolve.Unavailable(err, "delete "+uri)
	}
	return nil
}

// Package facts assembles sentences about an artist from the graph and the
// similar-artists feed.
package facts

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/bore/internal/core/model"
	"github.com/agenthands/bore/internal/driver"
	"github.com/agenthands/bore/internal/feed"
	"github.com/agenthands/bore/internal/logger"
	"github.com/agenthands/bore/internal/metrics"
)

// Assembler turns a resolved entity into an ordered list of facts.
type Assembler interface {
	Assemble(ctx context.Context, e *model.Entity) ([]model.Fact, error)
}

// Probe produces at most one fact. A probe that finds nothing returns
// model.Absent() and a nil error; only graph store failures are errors.
type Probe struct {
	Name string
	Run  func(ctx context.Context, e *model.Entity) (model.Outcome, error)
}

// ArtistAssembler runs the artist probes. Probes share nothing but the
// read-only entity, so they run concurrently unless Sequential is set; the
// result is always in probe order.
type ArtistAssembler struct {
	Driver     driver.GraphDriver
	Similar    *feed.Similar
	Sequential bool
	Logger     *zap.Logger

	probes []Probe
}

func NewArtistAssembler(d driver.GraphDriver, similar *feed.Similar, log *zap.Logger) *ArtistAssembler {
	a := &ArtistAssembler{
		Driver:  d,
		Similar: similar,
		Logger:  logger.OrNop(log),
	}
	a.probes = []Probe{
		{Name: "profile", Run: a.profile},
		{Name: "formed", Run: a.formed},
		{Name: "close_friend", Run: a.closeFriend},
		{Name: "catalog", Run: a.catalog},
		{Name: "similar", Run: a.similar},
	}
	return a
}

// Probes returns the probes in the order their facts are listed.
func (a *ArtistAssembler) Probes() []Probe {
	return append([]Probe(nil), a.probes...)
}

func (a *ArtistAssembler) Assemble(ctx context.Context, e *model.Entity) ([]model.Fact, error) {
	outcomes := make([]model.Outcome, len(a.probes))

	if a.Sequential {
		for i, p := range a.probes {
			o, err := a.run(ctx, p, e)
			if err != nil {
				return nil, err
			}
			outcomes[i] = o
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for i, p := range a.probes {
			i, p := i, p
			g.Go(func() error {
				o, err := a.run(gctx, p, e)
				if err != nil {
					return err
				}
				outcomes[i] = o
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	facts := make([]model.Fact, 0, len(outcomes))
	for _, o := range outcomes {
		if f, ok := o.Fact(); ok {
			facts = append(facts, f)
		}
	}
	return facts, nil
}

func (a *ArtistAssembler) run(ctx context.Context, p Probe, e *model.Entity) (model.Outcome, error) {
	o, err := p.Run(ctx, e)
	if err != nil {
		metrics.Default().IncProbeOutcome(p.Name, metrics.OutcomeError)
		a.Logger.Error("probe failed", zap.String("probe", p.Name), zap.String("uri", e.URI), zap.Error(err))
		return model.Absent(), err
	}

	if _, ok := o.Fact(); !ok {
		metrics.Default().IncProbeOutcome(p.Name, metrics.OutcomeAbsent)
		a.Logger.Debug("probe found nothing", zap.String("probe", p.Name), zap.String("uri", e.URI))
		return o, nil
	}

	metrics.Default().IncProbeOutcome(p.Name, metrics.OutcomeFact)
	return o, nil
}

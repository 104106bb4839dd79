package core

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/agenthands/bore/internal/config"
	"github.com/agenthands/bore/internal/core/facts"
	"github.com/agenthands/bore/internal/core/resolve"
	"github.com/agenthands/bore/internal/driver"
	"github.com/agenthands/bore/internal/feed"
)

// Open connects to the configured graph stores and builds a Bore around them.
// The secondary store is only dialled when it has a URI.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Bore, error) {
	primary, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, log)
	if err != nil {
		return nil, errors.Wrap(err, "connect to memgraph")
	}

	var secondary driver.GraphDriver
	if cfg.Secondary.URI != "" {
		sd, err := driver.NewMemgraphDriver(ctx, cfg.Secondary.URI, cfg.Secondary.User, cfg.Secondary.Password, log)
		if err != nil {
			_ = primary.Close(ctx)
			return nil, errors.Wrap(err, "connect to secondary store")
		}
		secondary = sd
	}

	client := feed.NewHTTPClient(cfg.Feed.Timeout(), cfg.Feed.UserAgent, cfg.Feed.MaxBodyBytes, cfg.Feed.RequestsPerMinute)
	similar := feed.NewSimilar(client, cfg.Feed.BaseURL, cfg.Feed.Format, cfg.Feed.APIKey)

	assembler := facts.NewArtistAssembler(primary, similar, log)
	assembler.Sequential = cfg.Assembler.Sequential

	b := NewBore(primary, resolve.NewResolver(primary, secondary, cfg.Resolver.ArtistURIMarker), assembler, log)
	b.CrossReferenceMarker = cfg.Resolver.CrossReferenceMarker
	return b, nil
}

// Close releases the graph store connections.
func (b *Bore) Close(ctx context.Context) error {
	err := b.Driver.Close(ctx)
	if b.Resolver != nil && b.Resolver.Secondary != nil {
		err = errors.CombineErrors(err, b.Resolver.Secondary.Close(ctx))
	}
	return err
}

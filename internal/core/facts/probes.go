package facts

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/bore/internal/core/common"
	"github.com/agenthands/bore/internal/core/model"
	"github.com/agenthands/bore/internal/core/resolve"
	"github.com/agenthands/bore/internal/driver"
	"github.com/agenthands/bore/internal/vocabulary"
)

// Verb phrases, one per probe.
const (
	VerbProfile     = "has a profile at"
	VerbFormed      = "was formed in"
	VerbBorn        = "was born in"
	VerbCloseFriend = "is a close friend of"
	VerbReleased    = "has released"
	VerbSoundsLike  = "sound a bit like"
)

// SimilarLimit caps how many similar artists are named.
const SimilarLimit = 4

var yearPattern = regexp.MustCompile(`^(\d+)-`)

func (a *ArtistAssembler) profile(ctx context.Context, e *model.Entity) (model.Outcome, error) {
	return found(e, VerbProfile, TidyURL(e.Profile)), nil
}

// formed takes the first dated event the store returns that is untyped or
// typed as a birth or formation. Rows are not ordered, so with several events this is not necessarily the
// earliest.
func (a *ArtistAssembler) formed(ctx context.Context, e *model.Entity) (model.Outcome, error) {
	rows, err := driver.Query(ctx, a.Driver, "formed", driver.FormationDateQuery, map[string]interface{}{
		"uri":   e.URI,
		"event": vocabulary.BIOEvent.IRI(),
		"type":  vocabulary.RDFType.IRI(),
		"kinds": []string{vocabulary.BIOBirth.IRI(), vocabulary.BIOFormation.IRI()},
		"date":  vocabulary.BIODate.IRI(),
	})
	if err != nil {
		return model.Absent(), resolve.Unavailable(err, "formation date")
	}
	if len(rows) == 0 {
		return model.Absent(), nil
	}

	verb := VerbBorn
	if resolve.IsGroup(e) {
		verb = VerbFormed
	}
	return found(e, verb, Year(rows[0].First())), nil
}

func (a *ArtistAssembler) closeFriend(ctx context.Context, e *model.Entity) (model.Outcome, error) {
	rows, err := driver.Query(ctx, a.Driver, "close_friend", driver.CloseFriendQuery, map[string]interface{}{
		"uri":      e.URI,
		"relation": vocabulary.RELCloseFriendOf.IRI(),
		"name":     vocabulary.FOAFName.IRI(),
	})
	if err != nil {
		return model.Absent(), resolve.Unavailable(err, "close friend")
	}
	if len(rows) == 0 {
		return model.Absent(), nil
	}
	return found(e, VerbCloseFriend, rows[0].First()), nil
}

func (a *ArtistAssembler) catalog(ctx context.Context, e *model.Entity) (model.Outcome, error) {
	rows, err := driver.Query(ctx, a.Driver, "catalog", driver.CatalogTitlesQuery, map[string]interface{}{
		"uri":   e.URI,
		"made":  vocabulary.FOAFMade.IRI(),
		"title": vocabulary.DCTitle.IRI(),
	})
	if err != nil {
		return model.Absent(), resolve.Unavailable(err, "catalog")
	}

	titles := make([]string, 0, len(rows))
	for _, r := range rows {
		titles = append(titles, r.First())
	}
	titles = common.Dedupe(titles)
	if len(titles) == 0 {
		return model.Absent(), nil
	}
	return found(e, VerbReleased, common.Join(titles)), nil
}

// similar never fails the run: the feed is a third party and any error
// from it means no fact.
func (a *ArtistAssembler) similar(ctx context.Context, e *model.Entity) (model.Outcome, error) {
	if a.Similar == nil || e.Name == "" {
		return model.Absent(), nil
	}

	names, err := a.Similar.Artists(ctx, e.Name)
	if err != nil {
		a.Logger.Warn("similar artists feed failed", zap.String("artist", e.Name), zap.Error(err))
		return model.Absent(), nil
	}

	names = common.Take(common.Dedupe(names), SimilarLimit)
	if len(names) == 0 {
		return model.Absent(), nil
	}
	return found(e, VerbSoundsLike, common.Join(names)), nil
}

// found builds a fact, or returns Absent when the object is empty.
func found(e *model.Entity, verb, object string) model.Outcome {
	f, err := model.NewFact(e.Subject(), verb, object)
	if err != nil {
		return model.Absent()
	}
	return model.Found(f)
}

// Year pulls the leading year out of a date such as "1987-03-15". Anything
// else is returned trimmed but otherwise unchanged.
func Year(date string) string {
	date = strings.TrimSpace(date)
	if m := yearPattern.FindStringSubmatch(date); m != nil {
		return m[1]
	}
	return date
}

// TidyURL drops the scheme, query, fragment and trailing slash of a link. The
// host and path are kept as stored, escapes included.
func TidyURL(raw string) string {
	s := strings.TrimSpace(raw)
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		s = s[len(u.Scheme)+len("://"):]
	} else {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "http://"), "https://")
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "/")
}

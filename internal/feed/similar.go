package feed

import (
	"bufio"
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// Feed formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Similar looks up artists that sound like a given artist.
type Similar struct {
	Client  Client
	BaseURL string
	Format  string
	APIKey  string
}

func NewSimilar(client Client, baseURL, format, apiKey string) *Similar {
	return &Similar{
		Client:  client,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Format:  format,
		APIKey:  apiKey,
	}
}

// URL builds the feed address for an artist name.
func (s *Similar) URL(name string) string {
	if s.Format == FormatJSON {
		q := url.Values{}
		q.Set("method", "artist.getsimilar")
		q.Set("artist", name)
		q.Set("api_key", s.APIKey)
		q.Set("format", "json")
		return s.BaseURL + "/?" + q.Encode()
	}
	return s.BaseURL + "/artist/" + url.PathEscape(name) + "/similar.txt"
}

// Artists returns the similar artist names in feed order. Every error is
// marked ErrFeed.
func (s *Similar) Artists(ctx context.Context, name string) ([]string, error) {
	body, err := s.Client.Fetch(ctx, s.URL(name))
	if err != nil {
		return nil, errors.Mark(err, ErrFeed)
	}

	if s.Format == FormatJSON {
		return ParseJSON(body)
	}
	return ParseText(body)
}

// ParseText reads one record per line and takes the last comma-separated
// field of each as the artist name. A body the scanner cannot read to the end,
// such as one with an over-long line, is a feed error.
func ParseText(body []byte) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if name := unescape(strings.TrimSpace(fields[len(fields)-1])); name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse similar.txt"), ErrFeed)
	}
	return names, nil
}

// ParseJSON reads a Last.fm artist.getsimilar response.
func ParseJSON(body []byte) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.Mark(errors.New("feed returned invalid JSON"), ErrFeed)
	}
	if msg := gjson.GetBytes(body, "message"); gjson.GetBytes(body, "error").Exists() {
		return nil, errors.Mark(errors.Newf("feed error: %s", msg.String()), ErrFeed)
	}

	var names []string
	for _, r := range gjson.GetBytes(body, "similarartists.artist.#.name").Array() {
		if name := unescape(strings.TrimSpace(r.String())); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// The feed double-escapes ampersands in artist names.
func unescape(s string) string {
	return strings.ReplaceAll(s, "&amp;", "&")
}

package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const similarTxt = `100,4a4ee089-93b1-4470-af9a-6ff575d32704,Minor Threat
87.5,,Rites of Spring

61.2,3b3ee0d5-1111-2222-3333-444444444444,Jawbox
55,,Shudder to Think
41,,Simon &amp; Garfunkel
`

func TestHTTPClient_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(similarTxt))
	}))
	defer srv.Close()

	c := NewHTTPClient(time.Second, "bore-test", 1<<20, 0)
	body, err := c.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, similarTxt, string(body))
	assert.Equal(t, "bore-test", gotUA)
}

func TestHTTPClient_Fetch_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClient(time.Second, "bore-test", 1<<20, 0)
	_, err := c.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFeed))
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestHTTPClient_Fetch_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	c := NewHTTPClient(time.Second, "bore-test", 16, 0)
	_, err := c.Fetch(context.Background(), srv.URL)

	assert.True(t, errors.Is(err, ErrFeed))
}

func TestHTTPClient_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewHTTPClient(50*time.Millisecond, "bore-test", 1<<20, 0)
	_, err := c.Fetch(context.Background(), srv.URL)

	assert.True(t, errors.Is(err, ErrFeed))
}

func TestHTTPClient_Fetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(time.Second, "bore-test", 1<<20, 0)
	_, err := c.Fetch(context.Background(), url)

	assert.True(t, errors.Is(err, ErrFeed))
}

func TestParseText(t *testing.T) {
	names, err := ParseText([]byte(similarTxt))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Minor Threat",
		"Rites of Spring",
		"Jawbox",
		"Shudder to Think",
		"Simon & Garfunkel",
	}, names)

	names, err = ParseText(nil)
	require.NoError(t, err)
	assert.Empty(t, names)

	names, err = ParseText([]byte("Plain\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Plain"}, names)
}

func TestParseText_LineTooLong(t *testing.T) {
	body := "1,a,Shellac\n" + strings.Repeat("x", 70000) + ",Long\n2,b,Jawbox\n"

	names, err := ParseText([]byte(body))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFeed))
	assert.Nil(t, names, "a truncated feed yields no names")
}

func TestParseJSON(t *testing.T) {
	body := `{"similarartists":{"artist":[
		{"name":"Minor Threat","match":"1"},
		{"name":"Simon &amp; Garfunkel","match":"0.5"}
	],"@attr":{"artist":"Fugazi"}}}`

	names, err := ParseJSON([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []string{"Minor Threat", "Simon & Garfunkel"}, names)
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON([]byte("<html>"))
	assert.True(t, errors.Is(err, ErrFeed))

	_, err = ParseJSON([]byte(`{"error":6,"message":"The artist you supplied could not be found"}`))
	assert.True(t, errors.Is(err, ErrFeed))
	assert.Contains(t, err.Error(), "could not be found")
}

func TestSimilar_URL(t *testing.T) {
	s := NewSimilar(nil, "http://ws.audioscrobbler.com/2.0/", FormatText, "")
	assert.Equal(t, "http://ws.audioscrobbler.com/2.0/artist/Simon%20&%20Garfunkel/similar.txt", s.URL("Simon & Garfunkel"))

	s = NewSimilar(nil, "http://ws.audioscrobbler.com/2.0", FormatJSON, "key")
	got := s.URL("AC/DC")
	assert.True(t, strings.HasPrefix(got, "http://ws.audioscrobbler.com/2.0/?"))
	assert.Contains(t, got, "artist=AC%2FDC")
	assert.Contains(t, got, "method=artist.getsimilar")
	assert.Contains(t, got, "api_key=key")
}

type fakeClient struct {
	body []byte
	err  error
	urls []string
}

func (f *fakeClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}

func TestSimilar_Artists(t *testing.T) {
	fc := &fakeClient{body: []byte(similarTxt)}
	s := NewSimilar(fc, "http://feed.test", FormatText, "")

	names, err := s.Artists(context.Background(), "Fugazi")
	require.NoError(t, err)
	assert.Len(t, names, 5)
	assert.Equal(t, []string{"http://feed.test/artist/Fugazi/similar.txt"}, fc.urls)
}

func TestSimilar_Artists_LineTooLong(t *testing.T) {
	body := "1,a,Shellac\n" + strings.Repeat("x", 70000) + ",Long\n"
	s := NewSimilar(&fakeClient{body: []byte(body)}, "http://feed.test", FormatText, "")

	names, err := s.Artists(context.Background(), "Fugazi")
	assert.True(t, errors.Is(err, ErrFeed))
	assert.Empty(t, names)
}

func TestSimilar_Artists_ClientError(t *testing.T) {
	s := NewSimilar(&fakeClient{err: errors.New("dial tcp: refused")}, "http://feed.test", FormatText, "")

	_, err := s.Artists(context.Background(), "Fugazi")
	assert.True(t, errors.Is(err, ErrFeed))
}

package source

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"una-go/internal/config"
	"una-go/internal/una"
)

const (
	defaultAuthURL = "https://www.reddit.com"
	defaultAPIURL  = "https://oauth.reddit.com"

	// Refresh the access token this long before reddit expires it.
	tokenSlack = time.Minute
)

// RedditSource fetches the usernotes wiki page for a subreddit through the
// reddit OAuth API, authenticating with the refresh-token grant. Fetch and
// auth failures surface wrapped in una.ErrSourceUnavailable.
type RedditSource struct {
	auth      *resty.Client
	api       *resty.Client
	cfg       config.SourceConfig
	subreddit string

	token       string
	tokenExpiry time.Time
}

// NewRedditSource creates a source for the given subreddit using the reddit
// credentials in cfg.
func NewRedditSource(cfg config.SourceConfig, subreddit string) (*RedditSource, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, fmt.Errorf("reddit source requires client_id, client_secret, and refresh_token to be set")
	}
	return newRedditSource(cfg, subreddit, defaultAuthURL, defaultAPIURL), nil
}

// newRedditSource wires the resty clients against explicit base URLs so tests
// can point the source at a local server.
func newRedditSource(cfg config.SourceConfig, subreddit, authURL, apiURL string) *RedditSource {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "linux:una:v0.1"
	}

	auth := resty.New().
		SetBaseURL(authURL).
		SetHeader("User-Agent", userAgent).
		SetBasicAuth(cfg.ClientID, cfg.ClientSecret).
		SetTimeout(30 * time.Second)

	api := resty.New().
		SetBaseURL(apiURL).
		SetHeader("User-Agent", userAgent).
		SetTimeout(30 * time.Second)

	return &RedditSource{auth: auth, api: api, cfg: cfg, subreddit: subreddit}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type wikiResponse struct {
	Data struct {
		ContentMD string `json:"content_md"`
	} `json:"data"`
}

// FetchRawDocument retrieves the current usernotes wiki content.
func (s *RedditSource) FetchRawDocument() ([]byte, error) {
	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}

	var wiki wikiResponse
	resp, err := s.api.R().
		SetAuthToken(token).
		SetQueryParam("raw_json", "1").
		SetResult(&wiki).
		Get(fmt.Sprintf("/r/%s/wiki/usernotes", s.subreddit))
	if err != nil {
		return nil, fmt.Errorf("%w: fetching usernotes wiki: %v", una.ErrSourceUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: usernotes wiki returned status %d", una.ErrSourceUnavailable, resp.StatusCode())
	}
	if wiki.Data.ContentMD == "" {
		return nil, fmt.Errorf("%w: usernotes wiki page is empty", una.ErrSourceUnavailable)
	}

	return []byte(wiki.Data.ContentMD), nil
}

// accessToken returns a cached access token, refreshing it through the
// OAuth refresh-token grant when missing or near expiry.
func (s *RedditSource) accessToken() (string, error) {
	if s.token != "" && time.Now().Before(s.tokenExpiry) {
		return s.token, nil
	}

	var tok tokenResponse
	resp, err := s.auth.R().
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": s.cfg.RefreshToken,
		}).
		SetResult(&tok).
		Post("/api/v1/access_token")
	if err != nil {
		return "", fmt.Errorf("%w: requesting access token: %v", una.ErrSourceUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: access token request returned status %d", una.ErrSourceUnavailable, resp.StatusCode())
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: access token response missing token", una.ErrSourceUnavailable)
	}

	s.token = tok.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenSlack)
	return s.token, nil
}

// Compile-time check that RedditSource implements una.NotesSource
var _ una.NotesSource = (*RedditSource)(nil)

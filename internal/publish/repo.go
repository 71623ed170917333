package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gridsense/internal/models"
)

var ErrMissingToken = errors.New("repository token is not set")

// RepoConfig addresses one file in a repository contents API.
type RepoConfig struct {
	BaseURL       string
	Owner         string
	Repo          string
	Path          string
	Branch        string // empty means the default branch
	CommitMessage string
	Attempts      int
	Backoff       time.Duration
}

// RepoSink commits the report to a repository file through the contents
// API: it reads the current blob sha, then PUTs the new content.
type RepoSink struct {
	cfg    RepoConfig
	token  string
	client *http.Client
	sleep  func(ctx context.Context, d time.Duration) error
}

// statusError is a non-2xx response. 5xx and 429 are retried.
type statusError struct {
	op   string
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.op, e.code, e.body)
}

func (e *statusError) retryable() bool {
	return e.code >= 500 || e.code == http.StatusTooManyRequests
}

func NewRepoSink(cfg RepoConfig, token string, client *http.Client) (*RepoSink, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = "Update grid status"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RepoSink{cfg: cfg, token: token, client: client, sleep: sleepCtx}, nil
}

func (s *RepoSink) Name() string { return "repo" }

// Publish retries transient failures with exponential backoff.
func (s *RepoSink) Publish(ctx context.Context, r models.StatusReport) error {
	body, err := encode(r)
	if err != nil {
		return err
	}

	delay := s.cfg.Backoff
	for attempt := 1; ; attempt++ {
		err = s.commit(ctx, body)
		if err == nil || attempt >= s.cfg.Attempts || !isRetryable(err) {
			break
		}
		if serr := s.sleep(ctx, delay); serr != nil {
			return errors.Join(err, serr)
		}
		delay *= 2
	}
	if err != nil {
		return fmt.Errorf("commit %s/%s/%s: %w", s.cfg.Owner, s.cfg.Repo, s.cfg.Path, err)
	}
	return nil
}

func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (s *RepoSink) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		s.cfg.BaseURL, url.PathEscape(s.cfg.Owner), url.PathEscape(s.cfg.Repo), escapePath(s.cfg.Path))
}

func escapePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

type contentsPut struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

func (s *RepoSink) commit(ctx context.Context, content []byte) error {
	sha, err := s.currentSHA(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(contentsPut{
		Message: s.cfg.CommitMessage,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
		Branch:  s.cfg.Branch,
	})
	if err != nil {
		return fmt.Errorf("encode contents request: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPut, s.contentsURL(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("put contents: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &statusError{op: "put contents", code: resp.StatusCode, body: readSnippet(resp.Body)}
	}
	return nil
}

// currentSHA returns the blob sha of the existing file, or "" when the file
// does not exist yet.
func (s *RepoSink) currentSHA(ctx context.Context) (string, error) {
	u := s.contentsURL()
	if s.cfg.Branch != "" {
		u += "?ref=" + url.QueryEscape(s.cfg.Branch)
	}
	req, err := s.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get contents: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var meta struct {
			SHA string `json:"sha"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
			return "", fmt.Errorf("decode contents: %w", err)
		}
		return meta.SHA, nil
	case http.StatusNotFound:
		return "", nil
	default:
		return "", &statusError{op: "get contents", code: resp.StatusCode, body: readSnippet(resp.Body)}
	}
}

func (s *RepoSink) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	return req, nil
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

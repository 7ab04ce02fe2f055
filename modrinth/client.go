package modrinth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/apex/log"
	"github.com/go-resty/resty/v2"

	"github.com/tie/modsync/modrinth/jsonspec"
	"github.com/tie/modsync/modsync"
)

const DefaultBaseURL = "https://api.modrinth.com"

// Options configures the API client.
type Options struct {
	// BaseURL is the API root. Default: DefaultBaseURL.
	BaseURL string

	// UserAgent identifies the application to the API.
	UserAgent string

	// Token is sent in the Authorization header of API requests.
	// It is required for private collections and never sent
	// along with file downloads.
	Token string

	// Timeout for individual requests, including downloads.
	// Zero means no timeout.
	Timeout time.Duration
}

// Client talks to the Modrinth REST API.
type Client struct {
	rc    *resty.Client
	base  string
	token string
}

func NewClient(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	rc := resty.New().
		SetBaseURL(base).
		SetLogger(log.Log).
		SetRetryCount(0)
	if opts.UserAgent != "" {
		rc.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	return &Client{
		rc:    rc,
		base:  base,
		token: opts.Token,
	}
}

func collectionPath(id string) string {
	return fmt.Sprintf("/v3/collection/%s", url.PathEscape(id))
}

func versionsPath(projectID string) string {
	return fmt.Sprintf("/v2/project/%s/version", url.PathEscape(projectID))
}

// Collection fetches the collection with the given ID.
func (c *Client) Collection(ctx context.Context, id string) (*modsync.Collection, error) {
	var body jsonspec.Collection
	if err := c.getJSON(ctx, collectionPath(id), &body); err != nil {
		return nil, err
	}
	return &modsync.Collection{
		ID:       body.ID,
		Name:     body.Name,
		Projects: body.Projects,
	}, nil
}

// Versions fetches the version list of a project, newest first.
func (c *Client) Versions(ctx context.Context, projectID string) ([]modsync.Version, error) {
	var body []jsonspec.Version
	if err := c.getJSON(ctx, versionsPath(projectID), &body); err != nil {
		return nil, err
	}
	versions := make([]modsync.Version, len(body))
	for i, v := range body {
		files := make([]modsync.File, len(v.Files))
		for j, f := range v.Files {
			files[j] = modsync.File{
				URL:      f.URL,
				Filename: f.Filename,
				Size:     f.Size,
				Primary:  f.Primary,
			}
		}
		versions[i] = modsync.Version{
			ID:            v.ID,
			Name:          v.Name,
			VersionNumber: v.VersionNumber,
			GameVersions:  v.GameVersions,
			Loaders:       v.Loaders,
			Files:         files,
		}
	}
	return versions, nil
}

// Download streams the file at rawurl to w. Only failures to read
// the response are reported as network errors; write errors are
// returned as is.
func (c *Client) Download(ctx context.Context, rawurl string, w io.Writer) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawurl)
	if err != nil {
		return &modsync.NetworkError{Op: http.MethodGet, URL: rawurl, Err: err}
	}
	r := resp.RawBody()
	defer func() {
		err := r.Close()
		if err != nil {
			log.WithError(err).WithField("url", rawurl).Warn("close response body")
		}
	}()
	if resp.IsError() {
		return &modsync.NetworkError{Op: http.MethodGet, URL: rawurl, StatusCode: resp.StatusCode()}
	}
	ew := &errWriter{w: w}
	if _, err := io.Copy(ew, r); err != nil {
		if ew.err != nil {
			return ew.err
		}
		return &modsync.NetworkError{Op: http.MethodGet, URL: rawurl, Err: err}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	req := c.rc.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		ForceContentType("application/json").
		SetResult(v)
	if c.token != "" {
		req.SetHeader("Authorization", c.token)
	}
	u := c.base + path
	resp, err := req.Get(path)
	if err != nil {
		return &modsync.NetworkError{Op: http.MethodGet, URL: u, Err: err}
	}
	if resp.IsError() {
		return &modsync.NetworkError{Op: http.MethodGet, URL: u, StatusCode: resp.StatusCode()}
	}
	return nil
}

// errWriter remembers the first write error so that it can be told
// apart from a failed read in io.Copy.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	n, err := ew.w.Write(p)
	if err != nil && ew.err == nil {
		ew.err = err
	}
	return n, err
}

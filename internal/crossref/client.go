package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Crossref REST endpoint.
const DefaultBaseURL = "https://api.crossref.org"

// Client implements Resolver against the live Crossref API.
type Client struct {
	BaseURL    string
	Mailto     string // operator contact, sent in the User-Agent and title queries
	HTTPClient *http.Client
}

func (c *Client) ResolveDOI(ctx context.Context, doi string) (*Work, error) {
	if strings.TrimSpace(doi) == "" {
		return nil, nil
	}
	endpoint := c.baseURL() + "/works/" + url.PathEscape(doi)

	var body struct {
		Message Work `json:"message"`
	}
	found, err := c.get(ctx, endpoint, &body)
	if err != nil || !found {
		return nil, err
	}
	return &body.Message, nil
}

func (c *Client) SearchTitle(ctx context.Context, title string, rows int) (*Work, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil
	}
	if rows <= 0 {
		rows = 5
	}
	u, err := url.Parse(c.baseURL() + "/works")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("query.title", title)
	q.Set("rows", strconv.Itoa(rows))
	if c.Mailto != "" {
		q.Set("mailto", c.Mailto)
	}
	u.RawQuery = q.Encode()

	var body struct {
		Message struct {
			Items []Work `json:"items"`
		} `json:"message"`
	}
	found, err := c.get(ctx, u.String(), &body)
	if err != nil || !found {
		return nil, err
	}
	if len(body.Message.Items) == 0 {
		return nil, nil
	}
	// Items arrive relevance-ranked; the top one is the best guess.
	return &body.Message.Items[0], nil
}

// get performs a single GET with no retries. A 404 reports (false, nil):
// the catalog simply has no record. Any other non-2xx status or a decode
// failure is an error for the caller to log and swallow.
func (c *Client) get(ctx context.Context, endpoint string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("crossref status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode crossref response: %w", err)
	}
	return true, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return DefaultBaseURL
}

func (c *Client) userAgent() string {
	if c.Mailto != "" {
		return fmt.Sprintf("pdfbib/1.0 (mailto:%s)", c.Mailto)
	}
	return "pdfbib/1.0"
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

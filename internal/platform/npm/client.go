// Package npm searches the npm registry.
package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dadi/cli/internal/util/retry"
)

// DefaultRegistryURL is the public npm registry.
const DefaultRegistryURL = "https://registry.npmjs.org/"

// Client is a minimal npm registry client.
type Client struct {
	registryURL string
	httpClient  *http.Client
	retry       []retry.Option
}

// Package is a search result.
type Package struct {
	Name        string   `json:"name"`
	Scope       string   `json:"scope"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

type searchResponse struct {
	Objects []struct {
		Package Package `json:"package"`
	} `json:"objects"`
	Total int `json:"total"`
}

// Filter selects search results.
type Filter func(Package) bool

// HasKeyword keeps packages tagged with keyword.
func HasKeyword(keyword string) Filter {
	return func(p Package) bool {
		for _, k := range p.Keywords {
			if k == keyword {
				return true
			}
		}
		return false
	}
}

// InScope keeps packages published under scope, e.g. "dadi".
func InScope(scope string) Filter {
	return func(p Package) bool {
		return p.Scope == scope || strings.HasPrefix(p.Name, "@"+scope+"/")
	}
}

// NewClient creates a registry client. An empty registryURL uses the public
// registry.
func NewClient(registryURL string) *Client {
	if registryURL == "" {
		registryURL = DefaultRegistryURL
	}
	if !strings.HasSuffix(registryURL, "/") {
		registryURL += "/"
	}
	return &Client{
		registryURL: registryURL,
		httpClient:  &http.Client{},
	}
}

// Search runs a text search and returns the packages every filter accepts,
// in registry order.
func (c *Client) Search(ctx context.Context, text string, filters ...Filter) ([]Package, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.registryURL+"-/v1/search?text="+url.QueryEscape(text), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var resp searchResponse
	err = retry.Do(ctx, func(context.Context) error {
		return c.do(req, &resp)
	}, c.retry...)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}

	var out []Package
	for _, obj := range resp.Objects {
		if accept(obj.Package, filters) {
			out = append(out, obj.Package)
		}
	}
	return out, nil
}

func accept(p Package, filters []Filter) bool {
	for _, f := range filters {
		if !f(p) {
			return false
		}
	}
	return true
}

// do sends req and decodes the JSON body into out. Client errors and
// undecodable bodies are permanent; server errors and transport failures are
// retried.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("registry error (status %d): %s", resp.StatusCode, string(body))
		if resp.StatusCode < 500 {
			return retry.Permanent(err)
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return retry.Permanent(fmt.Errorf("parse response: %w", err))
	}

	return nil
}

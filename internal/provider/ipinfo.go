package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const ipInfoBaseURL = "https://ipinfo.io"

// IPInfo queries the ipinfo.io plain-text country endpoint, optionally
// authenticated with a token. Without a token it runs on the free
// tier, so it still sits before the keyed providers.
type IPInfo struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewIPInfo creates the secondary provider. token may be empty.
func NewIPInfo(token string) *IPInfo {
	return &IPInfo{BaseURL: ipInfoBaseURL, Token: token, HTTPClient: http.DefaultClient}
}

// Name identifies the provider in logs.
func (p *IPInfo) Name() string { return "ipinfo" }

// Lookup trusts the trimmed body only when it is exactly two
// characters long; anything else (error pages, HTML, rate-limit
// notices) is a miss.
func (p *IPInfo) Lookup(ctx context.Context, addr string) (string, error) {
	u := fmt.Sprintf("%s/%s/country", p.BaseURL, addr)
	if p.Token != "" {
		u += "?token=" + url.QueryEscape(p.Token)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	code := strings.TrimSpace(string(body))
	if len(code) != 2 {
		return "", ErrNoResult
	}
	return code, nil
}

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const ipGeolocationBaseURL = "https://api.ipgeolocation.io"

// IPGeolocation queries the keyed api.ipgeolocation.io endpoint. It is
// only placed in the chain when an API key is configured; without a
// key it is skipped entirely, never attempted.
type IPGeolocation struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewIPGeolocation creates the tertiary provider with the given key.
func NewIPGeolocation(apiKey string) *IPGeolocation {
	return &IPGeolocation{BaseURL: ipGeolocationBaseURL, APIKey: apiKey, HTTPClient: http.DefaultClient}
}

// Name identifies the provider in logs.
func (p *IPGeolocation) Name() string { return "ipgeolocation" }

type ipGeolocationResponse struct {
	CountryCode2 string `json:"country_code2"`
}

// Lookup extracts the country_code2 field; an empty field is a miss.
func (p *IPGeolocation) Lookup(ctx context.Context, addr string) (string, error) {
	u := fmt.Sprintf("%s/ipgeo?apiKey=%s&ip=%s&fields=country_code2",
		p.BaseURL, url.QueryEscape(p.APIKey), addr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var v ipGeolocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if v.CountryCode2 == "" {
		return "", ErrNoResult
	}
	return v.CountryCode2, nil
}

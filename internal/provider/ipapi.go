package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const ipAPIBaseURL = "http://ip-api.com"

// IPAPI queries the free ip-api.com JSON endpoint. It needs no
// credentials and is therefore first in the chain.
type IPAPI struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewIPAPI creates the primary provider against the public endpoint.
func NewIPAPI() *IPAPI {
	return &IPAPI{BaseURL: ipAPIBaseURL, HTTPClient: http.DefaultClient}
}

// Name identifies the provider in logs.
func (p *IPAPI) Name() string { return "ip-api" }

type ipAPIResponse struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
}

// Lookup expects a body like {"status":"success","countryCode":"US"}.
// A non-success status or a missing code is a miss, not an error.
func (p *IPAPI) Lookup(ctx context.Context, addr string) (string, error) {
	url := fmt.Sprintf("%s/json/%s?fields=countryCode,status", p.BaseURL, addr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var v ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if v.Status != "success" || v.CountryCode == "" {
		return "", ErrNoResult
	}
	return v.CountryCode, nil
}

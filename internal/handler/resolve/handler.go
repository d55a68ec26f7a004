// Package resolve exposes country resolution and cache diagnostics
// over HTTP.
package resolve

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/TomasB/geolookup/internal/cache"
	"github.com/TomasB/geolookup/internal/ipaddr"
	"github.com/gin-gonic/gin"
)

// CountryResolver is the subset of the resolver the handlers need.
type CountryResolver interface {
	Resolve(ctx context.Context, addr string) string
	CacheStats() cache.Stats
	ClearCache()
}

// CountryResponse is the JSON response for a country lookup. Country
// is empty when the address is non-routable or unresolvable.
type CountryResponse struct {
	IP      string `json:"ip"`
	Country string `json:"country"`
}

// Handler manages resolution and cache endpoints.
type Handler struct {
	resolver CountryResolver
}

// NewHandler creates a new resolve handler with the given resolver.
func NewHandler(r CountryResolver) *Handler {
	return &Handler{resolver: r}
}

// Country handles GET /api/v1/country. The client address is derived
// from proxy headers, falling back to the connection address.
func (h *Handler) Country(c *gin.Context) {
	addr := ipaddr.ClientIP(c.Request.Header, c.Request.RemoteAddr)
	if addr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "client address unknown",
		})
		return
	}

	country := h.resolver.Resolve(c.Request.Context(), addr)
	slog.Debug("country resolved", "ip", addr, "country", country)

	c.JSON(http.StatusOK, CountryResponse{IP: addr, Country: country})
}

// CountryFor handles GET /api/v1/country/:ip for an explicit address.
func (h *Handler) CountryFor(c *gin.Context) {
	addr := c.Param("ip")
	country := h.resolver.Resolve(c.Request.Context(), addr)

	c.JSON(http.StatusOK, CountryResponse{IP: addr, Country: country})
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.resolver.CacheStats())
}

// ClearCache handles DELETE /api/v1/cache.
func (h *Handler) ClearCache(c *gin.Context) {
	h.resolver.ClearCache()
	slog.Info("result cache cleared")
	c.Status(http.StatusNoContent)
}

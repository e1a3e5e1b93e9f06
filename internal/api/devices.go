package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/acsops/acs-console/internal/devcache"
	"github.com/acsops/acs-console/internal/metrics"
	"github.com/acsops/acs-console/internal/nbi"
)

// DefaultPageSize is used when the request doesn't specify one.
const DefaultPageSize = 10

// NewDeviceFetcher adapts the NBI client into the cache's fetcher,
// normalizing every record before it is cached.
func NewDeviceFetcher(client *nbi.Client) devcache.Fetcher {
	return devcache.FetcherFunc(func(ctx context.Context, limit, skip int) ([]nbi.DeviceRecord, int, error) {
		raw, total, err := client.QueryDevices(ctx, &nbi.DeviceQuery{
			Limit: limit,
			Skip:  skip,
		})
		if err != nil {
			return nil, 0, err
		}
		records := make([]nbi.DeviceRecord, 0, len(raw))
		for _, doc := range raw {
			records = append(records, nbi.Normalize(doc))
		}
		return records, total, nil
	})
}

// devicePageResponse is the GET /api/devices/page payload.
type devicePageResponse struct {
	Devices  []nbi.DeviceRecord `json:"devices"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

// HandleDevicesPage serves one page of the device listing through the
// incremental page cache. The caching policy is read from the persisted
// console configuration on every call, so toggling the cache or its
// expiry takes effect on the next request.
// GET /api/devices/page?page=1&pageSize=10
func (h *Handler) HandleDevicesPage(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil || page < 1 {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid page parameter")
		return
	}
	pageSize, err := queryInt(r, "pageSize", DefaultPageSize)
	if err != nil || pageSize < 1 {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid pageSize parameter")
		return
	}

	cfg, err := h.store.GetConfig(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	devices, total, err := h.cache.GetPage(r.Context(), page, pageSize, devcache.Config{
		Enabled:       cfg.CacheEnabled,
		ExpiryMinutes: cfg.CacheExpiryMinutes,
	})
	if err != nil {
		h.writeNBIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, devicePageResponse{
		Devices:  devices,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// HandleCacheClear wipes the server-side page cache and acknowledges the
// client-local clear.
// DELETE /api/cache/clear
func (h *Handler) HandleCacheClear(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	h.logger.Info("device cache cleared")
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

// writeNBIError maps upstream failures: unreachable is 503, anything
// else bad from the NBI is reported as a gateway failure.
func (h *Handler) writeNBIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, nbi.ErrUnavailable):
		h.logger.Error("NBI unreachable", "error", err)
		WriteError(w, http.StatusServiceUnavailable, ErrCodeUpstreamUnavailable, "NBI service unavailable")
	case errors.Is(err, devcache.ErrBadPage):
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	default:
		h.logger.Error("NBI query failed", "error", err)
		metrics.RecordUpstreamError("status")
		WriteError(w, http.StatusBadGateway, ErrCodeUpstreamUnavailable, "NBI request failed")
	}
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

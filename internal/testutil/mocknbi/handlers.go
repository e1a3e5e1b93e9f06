package mocknbi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/acsops/acs-console/internal/nbi"
)

// handleDevices serves a limit/skip window over the device fixtures and
// reports the total matching count in the X-Total-Count header.
func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.queries++
	fail := s.failNext
	s.failNext = false
	devices := s.devices
	s.mu.Unlock()

	if fail {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		//nolint:errcheck
		_, _ = w.Write([]byte(`{"message":"injected failure"}`))
		return
	}

	limit := intParam(r, "limit", len(devices))
	skip := intParam(r, "skip", 0)

	page := []nbi.RawDevice{}
	if skip < len(devices) {
		end := skip + limit
		if end > len(devices) {
			end = len(devices)
		}
		page = devices[skip:end]
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(nbi.TotalCountHeader, strconv.Itoa(len(devices)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	_ = json.NewEncoder(w).Encode(page)
}

// handleFaults serves an empty fault list, enough for proxy passthrough
// tests.
func (s *Server) handleFaults(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	_, _ = w.Write([]byte(`[]`))
}

// handleFiles serves an empty file list.
func (s *Server) handleFiles(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	_, _ = w.Write([]byte(`[]`))
}

func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

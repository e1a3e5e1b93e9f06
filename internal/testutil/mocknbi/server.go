// Package mocknbi provides a fake ACS northbound API server for testing
// and local development.
package mocknbi

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/acsops/acs-console/internal/nbi"
)

// Server is a fake NBI serving a fixed set of device documents with the
// same pagination contract as the real API: limit/skip query parameters
// and the total matching count in the X-Total-Count header.
type Server struct {
	mu       sync.Mutex
	devices  []nbi.RawDevice
	failNext bool
	queries  int

	httpSrv *httptest.Server
}

// New creates a mock NBI backed by httptest.
func New(devices []nbi.RawDevice) *Server {
	s := &Server{devices: devices}
	s.httpSrv = httptest.NewServer(s.routes())
	return s
}

// NewUnstarted creates a mock NBI handler without binding a listener,
// for use with a plain http.Server.
func NewUnstarted(devices []nbi.RawDevice) (*Server, http.Handler) {
	s := &Server{devices: devices}
	return s, s.routes()
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	return s.httpSrv.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	if s.httpSrv != nil {
		s.httpSrv.Close()
	}
}

// SetDevices replaces the device fixtures.
func (s *Server) SetDevices(devices []nbi.RawDevice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices = devices
}

// FailNext makes the next device query respond with a 500.
func (s *Server) FailNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = true
}

// Queries returns the number of device queries served so far.
func (s *Server) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /devices", s.handleDevices)
	mux.HandleFunc("GET /faults", s.handleFaults)
	mux.HandleFunc("GET /files", s.handleFiles)
	return mux
}

package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// idSegment matches whole path segments that look like device or record
// identifiers, to keep the path label cardinality bounded.
var idSegment = regexp.MustCompile(`^(\d+|[0-9A-F]{6}-.+)$`)

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.statusCode = code
		r.written = true
		r.ResponseWriter.WriteHeader(code)
	}
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.statusCode = http.StatusOK
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}

// Middleware records request count and latency for every request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		start := time.Now()
		next.ServeHTTP(recorder, r)
		duration := time.Since(start).Seconds()

		path := normalizePath(r.URL.Path)
		status := strconv.Itoa(recorder.statusCode)

		RecordRequest(r.Method, path, status)
		RecordRequestDuration(r.Method, path, status, duration)
	})
}

// normalizePath replaces identifier-like path segments with :id so each
// route produces a single metric label value.
func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if idSegment.MatchString(s) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

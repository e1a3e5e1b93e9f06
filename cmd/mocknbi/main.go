// Package main runs a standalone fake NBI for local development, so the
// console can be exercised without a real ACS behind it.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/acsops/acs-console/internal/testutil/mocknbi"
)

func main() {
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":7557"
	}

	count := 100
	if v := os.Getenv("DEVICE_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}

	_, handler := mocknbi.NewUnstarted(mocknbi.Devices(count))

	slog.Info("mock NBI starting", "addr", addr, "devices", count)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

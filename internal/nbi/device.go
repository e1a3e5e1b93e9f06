package nbi

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DeviceRecord is the flat, normalized form of a device document served
// to the console.
type DeviceRecord struct {
	ID              string         `json:"id"`
	SerialNumber    string         `json:"serialNumber"`
	OUI             string         `json:"oui"`
	ProductClass    string         `json:"productClass"`
	HardwareVersion string         `json:"hardwareVersion"`
	SoftwareVersion string         `json:"softwareVersion"`
	UptimeSeconds   int64          `json:"uptimeSeconds"`
	LastInform      time.Time      `json:"lastInform"`
	Registered      time.Time      `json:"registered"`
	SSIDs           []string       `json:"ssids"`
	PPPoEUsername   string         `json:"pppoeUsername"`
	Params          map[string]any `json:"params"`
}

// defaultSSID matches factory-default SSID names like "SSID1".
var defaultSSID = regexp.MustCompile(`^SSID\d+$`)

// Normalize flattens a nested device document into a DeviceRecord.
// It is a pure function with no side effects.
//
// Dynamic parameters are collected as dotted paths. Well-known paths
// (device info versions, uptime, SSIDs, the PPPoE username) are lifted
// into named fields and removed from the parameter map; everything else
// stays in Params.
func Normalize(raw RawDevice) DeviceRecord {
	rec := DeviceRecord{
		SSIDs:  []string{},
		Params: map[string]any{},
	}

	if id, ok := raw["_id"].(string); ok {
		rec.ID = id
	}
	rec.LastInform = parseTimestamp(raw["_lastInform"])
	rec.Registered = parseTimestamp(raw["_registered"])

	if devID, ok := raw["_deviceId"].(map[string]any); ok {
		rec.SerialNumber = asString(devID["_SerialNumber"])
		rec.OUI = asString(devID["_OUI"])
		rec.ProductClass = asString(devID["_ProductClass"])
	}

	params := map[string]any{}
	for key, node := range raw {
		if strings.HasPrefix(key, "_") {
			continue
		}
		flatten(key, node, params)
	}

	// Sorted scan keeps the "first match" for the PPPoE username
	// deterministic: the lowest parameter path wins.
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := params[key]
		switch {
		case strings.HasSuffix(key, ".DeviceInfo.SoftwareVersion"):
			rec.SoftwareVersion = asString(value)
		case strings.HasSuffix(key, ".DeviceInfo.HardwareVersion"):
			rec.HardwareVersion = asString(value)
		case strings.HasSuffix(key, ".DeviceInfo.UpTime"):
			rec.UptimeSeconds = asInt64(value)
		case strings.HasSuffix(key, ".SSID"):
			if ssid := asString(value); ssid != "" && !defaultSSID.MatchString(ssid) {
				rec.SSIDs = append(rec.SSIDs, ssid)
			}
		case rec.PPPoEUsername == "" && isPPPoEUsernameKey(key):
			rec.PPPoEUsername = asString(value)
		default:
			rec.Params[key] = value
		}
	}

	return rec
}

// isPPPoEUsernameKey reports whether the parameter path names a PPPoE
// username, matched case-insensitively.
func isPPPoEUsernameKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "pppoe") && strings.Contains(lower, "username")
}

// flatten walks a device subtree collecting "_value" leaves under their
// dotted parameter path.
func flatten(prefix string, node any, out map[string]any) {
	m, ok := node.(map[string]any)
	if !ok {
		return
	}
	if v, ok := m["_value"]; ok {
		out[prefix] = v
		return
	}
	for key, child := range m {
		if strings.HasPrefix(key, "_") {
			continue
		}
		flatten(prefix+"."+key, child, out)
	}
}

// parseTimestamp accepts RFC3339 strings or epoch milliseconds.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	case float64:
		return time.UnixMilli(int64(t)).UTC()
	}
	return time.Time{}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case string:
		if parsed, err := strconv.ParseInt(n, 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}

package mocknbi

import (
	"fmt"

	"github.com/acsops/acs-console/internal/nbi"
)

// Devices generates n GenieACS-style device documents with sequential
// serial numbers, suitable as pagination fixtures.
func Devices(n int) []nbi.RawDevice {
	devices := make([]nbi.RawDevice, 0, n)
	for i := 1; i <= n; i++ {
		serial := fmt.Sprintf("SN%06d", i)
		devices = append(devices, nbi.RawDevice{
			"_id":         fmt.Sprintf("202BC1-Router-%s", serial),
			"_lastInform": "2025-06-01T10:00:00Z",
			"_registered": "2025-01-15T08:30:00Z",
			"_deviceId": map[string]any{
				"_SerialNumber": serial,
				"_OUI":          "202BC1",
				"_ProductClass": "Router",
				"_Manufacturer": "ExampleCo",
			},
			"InternetGatewayDevice": map[string]any{
				"DeviceInfo": map[string]any{
					"SoftwareVersion": map[string]any{"_value": "1.2.3"},
					"HardwareVersion": map[string]any{"_value": "rev-b"},
					"UpTime":          map[string]any{"_value": float64(3600 * i)},
				},
			},
		})
	}
	return devices
}

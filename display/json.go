package display

import (
	"encoding/json"
	"os"
)

// MarshalJSON marshals JSON with pretty formatting, or compactly when
// XCORE_JSON_COMPACT is set (one record per line for log shippers)
func MarshalJSON(v interface{}) ([]byte, error) {
	if os.Getenv("XCORE_JSON_COMPACT") != "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// Package display renders command results for terminals and scripts.
package display

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ShouldOutputJSON determines if a command should output JSON based on its
// --json flag, the root --json flag and XCORE_JSON
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return envJSON()
	}

	// Check if --json flag was explicitly set
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Check global --json flag
	if f := cmd.Root().PersistentFlags().Lookup("json"); f != nil && f.Value.String() == "true" {
		return true
	}

	return envJSON()
}

func envJSON() bool {
	v := os.Getenv("XCORE_JSON")
	return v == "1" || v == "true"
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

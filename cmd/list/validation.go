package list

import (
	"fmt"
	"strings"
)

// validateListArgs validates the arguments provided to the list command.
func validateListArgs(options *ListOptions) error {
	switch strings.ToLower(options.Status) {
	case "", "open", "resolved":
		return nil
	default:
		return fmt.Errorf("the 'status' flag must be 'open' or 'resolved', got %q", options.Status)
	}
}

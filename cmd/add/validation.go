package add

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codereport-dev/codereport/internal/report"
)

// validateAddArgs validates the arguments provided to the add command.
func validateAddArgs(options *AddOptions, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one location argument is required")
	}
	if options.Tag == "" {
		return fmt.Errorf("the 'tag' flag must be specified")
	}
	if strings.TrimSpace(options.Message) == "" {
		return fmt.Errorf("the 'message' flag must be specified")
	}
	return nil
}

// parseLocation parses "path:start-end" (e.g. "src/parser.go:10-20") into a
// repo-relative path and a line range. The last colon separates the path
// from the range so Windows-style paths survive.
func parseLocation(location string) (string, report.LineRange, error) {
	colon := strings.LastIndex(location, ":")
	if colon < 0 {
		return "", report.LineRange{}, fmt.Errorf("expected <path>:<start>-<end>, got %q", location)
	}

	path := strings.TrimSpace(location[:colon])
	if path == "" {
		return "", report.LineRange{}, fmt.Errorf("path is empty in %q", location)
	}
	path = strings.ReplaceAll(path, `\`, "/")

	rangePart := location[colon+1:]
	dash := strings.Index(rangePart, "-")
	if dash < 0 {
		return "", report.LineRange{}, fmt.Errorf("expected <start>-<end> line range, got %q", rangePart)
	}

	start, err := strconv.Atoi(strings.TrimSpace(rangePart[:dash]))
	if err != nil {
		return "", report.LineRange{}, fmt.Errorf("invalid start line %q", rangePart[:dash])
	}
	end, err := strconv.Atoi(strings.TrimSpace(rangePart[dash+1:]))
	if err != nil {
		return "", report.LineRange{}, fmt.Errorf("invalid end line %q", rangePart[dash+1:])
	}

	return path, report.LineRange{Start: start, End: end}, nil
}

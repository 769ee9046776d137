package report

import (
	"fmt"
	"strconv"
	"strings"
)

// DateFormat is how all dates are persisted. Day precision is enough for
// expiration arithmetic and keeps the store file human-diffable.
const DateFormat = "2006-01-02"

// Status of a report. A report past its expiration date stays open until it
// is explicitly resolved.
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// OwnerSource identifies how a report's owner was resolved.
type OwnerSource string

const (
	OwnerSourceCodeowner OwnerSource = "codeowner"
	OwnerSourceGitBlame  OwnerSource = "git-blame"
	OwnerSourceUnknown   OwnerSource = "unknown"
)

// Owner is the attributed responsible party for a report.
type Owner struct {
	Source   OwnerSource `yaml:"source"`
	Identity string      `yaml:"identity,omitempty"`
}

// UnknownOwner is what attribution falls back to when neither CODEOWNERS nor
// blame history can name anyone.
func UnknownOwner() Owner {
	return Owner{Source: OwnerSourceUnknown}
}

// LineRange is an inclusive 1-based line range within a file.
type LineRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Valid reports whether the range satisfies 1 <= Start <= End.
func (r LineRange) Valid() bool {
	return r.Start >= 1 && r.End >= r.Start
}

func (r LineRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Report is a single tracked follow-up item bound to a file/line range.
type Report struct {
	ID        string    `yaml:"id"`
	Path      string    `yaml:"path"`
	Range     LineRange `yaml:"range"`
	Tag       string    `yaml:"tag"`
	Message   string    `yaml:"message"`
	Owner     Owner     `yaml:"owner"`
	Status    Status    `yaml:"status"`
	CreatedAt string    `yaml:"created_at"`
	// ExpiresAt is a snapshot computed at creation time from the tag's
	// configured expiration. It is never recomputed when the config changes.
	ExpiresAt string `yaml:"expires_at,omitempty"`
}

// IDPrefix tags every report identifier.
const IDPrefix = "CR-"

// FormatID renders a sequence number as a report ID, e.g. 6 -> "CR-000006".
func FormatID(seq int) string {
	return fmt.Sprintf("%s%06d", IDPrefix, seq)
}

// ParseID extracts the sequence number from a report ID. Returns 0 and false
// for anything that does not look like a report ID.
func ParseID(id string) (int, bool) {
	if !strings.HasPrefix(id, IDPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, IDPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

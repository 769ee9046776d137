package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	yaml "gopkg.in/yaml.v2"

	"github.com/codereport-dev/codereport/pkg/shared/files"
)

const (
	// StoreVersion is bumped only on incompatible layout changes.
	StoreVersion = 1

	// DataDirName is the repo-local directory holding all persisted state.
	DataDirName = ".codereports"

	// ReportsFilename is the reports file inside DataDirName.
	ReportsFilename = "reports.yaml"
)

// document is the persisted shape of the store. NextID lives next to the
// entries so the allocator state survives deletes and is rewritten atomically
// with the rest of the document.
type document struct {
	Version int      `yaml:"version"`
	NextID  int      `yaml:"next_id"`
	Entries []Report `yaml:"entries"`
}

// Policy supplies tag validity and expiration rules to Create. Implemented by
// the policy config.
type Policy interface {
	TagKnown(tag string) bool
	TagEnabled(tag string) bool
	TagExpiresDays(tag string) (int, bool)
}

// OwnerResolver resolves best-effort attribution for a file/line range. It
// never fails; unresolvable ranges yield an unknown owner.
type OwnerResolver interface {
	Resolve(path string, rng LineRange) Owner
}

// CreateParams are the caller-supplied fields of a new report. Everything
// else is derived.
type CreateParams struct {
	Path    string
	Range   LineRange
	Tag     string
	Message string
}

// Filter narrows List results. Zero-value fields match everything.
type Filter struct {
	Tag    string
	Status Status
}

func (f Filter) matches(r *Report) bool {
	if f.Tag != "" && !strings.EqualFold(f.Tag, r.Tag) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(string(f.Status), string(r.Status)) {
		return false
	}
	return true
}

// Store is the durable collection of report records. It owns ID allocation,
// validation, and the only mutation paths. Every operation reparses the file
// fresh; the store is not a long-lived server.
type Store struct {
	repoRoot string
	logger   hclog.Logger
}

// NewStore creates a Store for the repository rooted at repoRoot.
func NewStore(repoRoot string, logger hclog.Logger) *Store {
	return &Store{
		repoRoot: repoRoot,
		logger:   logger,
	}
}

// Path returns the location of the reports file.
func (s *Store) Path() string {
	return filepath.Join(s.repoRoot, DataDirName, ReportsFilename)
}

// Create validates the parameters, allocates the next ID, resolves ownership
// and persists the new report. Validation happens before any write or any
// ownership lookup, so invalid input never touches state.
func (s *Store) Create(params CreateParams, pol Policy, res OwnerResolver, now time.Time) (*Report, error) {
	if !params.Range.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRange, params.Range)
	}
	if strings.TrimSpace(params.Message) == "" {
		return nil, ErrEmptyMessage
	}

	tag := strings.ToLower(params.Tag)
	if !pol.TagKnown(tag) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, params.Tag)
	}
	if !pol.TagEnabled(tag) {
		return nil, fmt.Errorf("%w: %q", ErrTagDisabled, tag)
	}

	path := filepath.ToSlash(params.Path)
	if _, err := os.Stat(filepath.Join(s.repoRoot, path)); err != nil {
		// Soft validation: the report is stored anyway, the file may
		// legitimately disappear later.
		s.logger.Warn("report path does not exist in the working tree", "path", path)
	}

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	owner := res.Resolve(path, params.Range)

	rep := Report{
		ID:        FormatID(doc.NextID),
		Path:      path,
		Range:     params.Range,
		Tag:       tag,
		Message:   params.Message,
		Owner:     owner,
		Status:    StatusOpen,
		CreatedAt: now.Format(DateFormat),
	}
	if days, ok := pol.TagExpiresDays(tag); ok {
		rep.ExpiresAt = now.AddDate(0, 0, days).Format(DateFormat)
	}

	doc.NextID++
	doc.Entries = append(doc.Entries, rep)

	if err := s.save(doc); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Resolve marks the report as resolved. Resolving an already-resolved report
// is a no-op success so CI scripts can call it unconditionally.
func (s *Store) Resolve(id string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	for i := range doc.Entries {
		if doc.Entries[i].ID != id {
			continue
		}
		if doc.Entries[i].Status == StatusResolved {
			return nil
		}
		doc.Entries[i].Status = StatusResolved
		return s.save(doc)
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the record permanently. Its ID is never reassigned.
func (s *Store) Delete(id string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	for i := range doc.Entries {
		if doc.Entries[i].ID == id {
			doc.Entries = append(doc.Entries[:i], doc.Entries[i+1:]...)
			return s.save(doc)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List returns all reports matching the filter in ascending ID order.
func (s *Store) List(f Filter) ([]Report, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	var out []Report
	for i := range doc.Entries {
		if f.matches(&doc.Entries[i]) {
			out = append(out, doc.Entries[i])
		}
	}
	sortByID(out)
	return out, nil
}

// Get returns the report with the given ID.
func (s *Store) Get(id string) (*Report, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Entries {
		if doc.Entries[i].ID == id {
			rep := doc.Entries[i]
			return &rep, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *Store) load() (*document, error) {
	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return &document{Version: StoreVersion, NextID: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reports file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	if doc.Version != StoreVersion {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)", ErrStoreCorrupt, doc.Version, StoreVersion)
	}

	// Reconcile the allocator with the entries so a hand-edited file can
	// never cause an ID to be handed out twice.
	if max := maxSequence(doc.Entries); doc.NextID <= max {
		doc.NextID = max + 1
	}
	if doc.NextID < 1 {
		doc.NextID = 1
	}
	return &doc, nil
}

// save rewrites the whole document sorted ascending by ID, so diffs in
// version control stay minimal and deterministic.
func (s *Store) save(doc *document) error {
	sortByID(doc.Entries)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize reports: %w", err)
	}
	if err := files.WriteFileAtomic(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write reports file: %w", err)
	}
	return nil
}

func maxSequence(entries []Report) int {
	max := 0
	for i := range entries {
		if n, ok := ParseID(entries[i].ID); ok && n > max {
			max = n
		}
	}
	return max
}

func sortByID(entries []Report) {
	sort.SliceStable(entries, func(i, j int) bool {
		ni, _ := ParseID(entries[i].ID)
		nj, _ := ParseID(entries[j].ID)
		return ni < nj
	})
}

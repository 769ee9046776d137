package policy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/codereport-dev/codereport/internal/report"
	"github.com/codereport-dev/codereport/pkg/shared/files"
)

const (
	// ConfigVersion is bumped only on incompatible layout changes.
	ConfigVersion = 1

	// ConfigFilename is the policy config inside the data directory.
	ConfigFilename = "config.yaml"
)

// ErrConfigInvalid means the policy config exists but cannot be used. Fatal;
// the tool never guesses around a broken policy.
var ErrConfigInvalid = errors.New("policy config is invalid")

// ErrConfigMissing asks the user to initialize the ledger first.
var ErrConfigMissing = errors.New("config not found, run 'codereport init' first")

// Severity classifies how urgent a tag is. Blocking severity fails the CI
// check for as long as the report is open.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityBlocking Severity = "blocking"
)

var validSeverities = map[Severity]bool{
	SeverityLow:      true,
	SeverityMedium:   true,
	SeverityHigh:     true,
	SeverityBlocking: true,
}

// TagPolicy configures one tag.
type TagPolicy struct {
	Enabled  bool     `yaml:"enabled"`
	Severity Severity `yaml:"severity"`
	// Expires is the number of days after creation at which a report with
	// this tag expires. Nil means reports with this tag never expire.
	Expires *int `yaml:"expires,omitempty"`
}

// Config is the parsed tag policy. Loaded once per invocation, read-only
// afterwards.
type Config struct {
	Version int                  `yaml:"version"`
	Tags    map[string]TagPolicy `yaml:"tags"`
}

// TagKnown reports whether the tag is present in the config.
func (c *Config) TagKnown(tag string) bool {
	_, ok := c.Tags[strings.ToLower(tag)]
	return ok
}

// TagEnabled reports whether the tag is present and enabled.
func (c *Config) TagEnabled(tag string) bool {
	tp, ok := c.Tags[strings.ToLower(tag)]
	return ok && tp.Enabled
}

// TagExpiresDays returns the configured expiration in days for the tag.
func (c *Config) TagExpiresDays(tag string) (int, bool) {
	tp, ok := c.Tags[strings.ToLower(tag)]
	if !ok || tp.Expires == nil {
		return 0, false
	}
	return *tp.Expires, true
}

// SeverityOf returns the tag's configured severity. Unknown tags evaluate as
// low severity so stale reports never crash evaluation; ok is false in that
// case so callers can surface a warning.
func (c *Config) SeverityOf(tag string) (Severity, bool) {
	tp, found := c.Tags[strings.ToLower(tag)]
	if !found {
		return SeverityLow, false
	}
	return tp.Severity, true
}

// TagNames returns the configured tag names sorted alphabetically.
func (c *Config) TagNames() []string {
	names := make([]string, 0, len(c.Tags))
	for name := range c.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the built-in policy. It mirrors what init writes out; the
// evaluator itself always reads from the loaded config, never from these
// values directly.
func Default() *Config {
	days := func(n int) *int { return &n }
	return &Config{
		Version: ConfigVersion,
		Tags: map[string]TagPolicy{
			"todo":     {Enabled: true, Severity: SeverityLow},
			"refactor": {Enabled: true, Severity: SeverityMedium, Expires: days(180)},
			"buggy":    {Enabled: true, Severity: SeverityHigh, Expires: days(90)},
			"critical": {Enabled: true, Severity: SeverityBlocking, Expires: days(14)},
		},
	}
}

// ConfigPath returns the location of the policy config for a repo.
func ConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, report.DataDirName, ConfigFilename)
}

// Load reads and validates the policy config of the repository.
func Load(repoRoot string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(repoRoot))
	if os.IsNotExist(err) {
		return nil, ErrConfigMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteDefault persists the built-in policy to the repo's data directory.
func WriteDefault(repoRoot string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to serialize default config: %w", err)
	}
	if err := files.WriteFileAtomic(ConfigPath(repoRoot), data, 0644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Version != ConfigVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrConfigInvalid, cfg.Version, ConfigVersion)
	}
	if len(cfg.Tags) == 0 {
		return fmt.Errorf("%w: no tags configured", ErrConfigInvalid)
	}
	for name, tp := range cfg.Tags {
		if !validSeverities[tp.Severity] {
			return fmt.Errorf("%w: tag %q has unknown severity %q", ErrConfigInvalid, name, tp.Severity)
		}
		if tp.Expires != nil && *tp.Expires < 0 {
			return fmt.Errorf("%w: tag %q has negative expiration", ErrConfigInvalid, name)
		}
	}
	return nil
}

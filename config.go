package pixsnap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables read by [Config.FromEnv].
const (
	EnvRecord       = "PIXSNAP_RECORD"
	EnvSeparateDirs = "PIXSNAP_SEPARATE_DIRS"
	EnvReferenceDir = "PIXSNAP_REFERENCE_DIR"
	EnvRunDir       = "PIXSNAP_RUN_DIR"
)

// ErrUnknownConfigFormat is returned by LoadConfig for unsupported extensions.
var ErrUnknownConfigFormat = errors.New("pixsnap: unknown config file format")

// Config holds the snapshot flags.
//
// Set it once before a suite runs and treat it as read-only afterwards.
// Changing SeparateDirectoriesPerNamespace invalidates references recorded
// under the other layout.
type Config struct {
	// RecordMode saves references instead of comparing. Snapshots always
	// fail in record mode.
	RecordMode bool `toml:"record_mode" yaml:"record_mode"`

	// SeparateDirectoriesPerNamespace nests one directory per dot-separated
	// segment of the class name instead of one directory per class.
	SeparateDirectoriesPerNamespace bool `toml:"separate_directories_per_namespace" yaml:"separate_directories_per_namespace"`

	// ReferenceDir is the base directory of reference images.
	ReferenceDir string `toml:"reference_dir" yaml:"reference_dir"`

	// RunDir is the base directory for mismatch artifacts.
	RunDir string `toml:"run_dir" yaml:"run_dir"`
}

// DefaultConfig returns compare mode with a flat layout, references under
// testdata/snapshots and artifacts under $TMPDIR/pixsnap.
func DefaultConfig() Config {
	return Config{
		ReferenceDir: filepath.Join("testdata", "snapshots"),
		RunDir:       filepath.Join(os.TempDir(), "pixsnap"),
	}
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file over
// DefaultConfig. Keys absent from the file keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("pixsnap: read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("pixsnap: decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("pixsnap: decode %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownConfigFormat, ext)
	}
	return cfg, nil
}

// FromEnv returns c overlaid with the PIXSNAP_* environment variables.
// Boolean variables accept anything [strconv.ParseBool] does; unparsable
// values are ignored.
func (c Config) FromEnv() Config {
	if b, ok := envBool(EnvRecord); ok {
		c.RecordMode = b
	}
	if b, ok := envBool(EnvSeparateDirs); ok {
		c.SeparateDirectoriesPerNamespace = b
	}
	if v := os.Getenv(EnvReferenceDir); v != "" {
		c.ReferenceDir = v
	}
	if v := os.Getenv(EnvRunDir); v != "" {
		c.RunDir = v
	}
	return c
}

func envBool(key string) (bool, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		Logger().Warn("pixsnap: ignoring invalid boolean", "key", key, "value", v)
		return false, false
	}
	return b, true
}

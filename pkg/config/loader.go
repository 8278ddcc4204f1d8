package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/logging"
	"github.com/arthur-debert/latch/pkg/paths"
)

var log = logging.GetLogger("config")

// EnvPrefix is the namespace for environment overrides.
const EnvPrefix = "LATCH_"

// Origin records where the effective configuration came from.
type Origin string

const (
	// OriginDefaults means no config file was found and the embedded
	// defaults apply unchanged.
	OriginDefaults Origin = "defaults"

	// OriginFile means a config file was parsed and merged over the
	// defaults.
	OriginFile Origin = "file"
)

// LoadOptions controls where Load looks for the config file.
type LoadOptions struct {
	// Path names an explicit config file. When set, the file must
	// exist; a missing explicit path is an error, not a fallback to
	// defaults. Empty means search the standard locations.
	Path string
}

// Result carries the loaded configuration and its provenance.
type Result struct {
	Config *Config
	Origin Origin

	// Path is the file that was merged, set only for OriginFile.
	Path string
}

// Load builds the effective configuration: hard-coded fallbacks, then
// the embedded defaults, then the config file if one exists, then
// LATCH_* environment overrides for scalar keys. A file that exists
// but does not parse is a hard error, never a silent fallback.
func Load(opts LoadOptions) (*Result, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(hardDefaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load fallback defaults")
	}
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load embedded defaults")
	}

	path, err := findConfigFile(opts.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read environment overrides")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "configuration does not match the expected schema")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Config: &cfg, Origin: OriginDefaults}
	if path != "" {
		res.Origin = OriginFile
		res.Path = path
	}

	log.Debug().
		Str("origin", string(res.Origin)).
		Str("path", res.Path).
		Int("links", len(cfg.Links)).
		Msg("configuration loaded")
	return res, nil
}

// hardDefaults is the bottom layer of the merge. It covers the scalar
// keys even if the embedded file is ever trimmed.
func hardDefaults() map[string]interface{} {
	return map[string]interface{}{
		"source_root":     defaultSourceRoot,
		"override_marker": "",
	}
}

// envKey maps LATCH_SOURCE_ROOT style variables onto config keys.
// Only scalar keys are overridable; everything else, including the
// LATCH_*_DIR location overrides, is excluded by returning "".
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	switch key {
	case "source_root", "override_marker":
		return key
	}
	return ""
}

// findConfigFile returns the config file to merge, or "" when none
// exists and the defaults apply.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		expanded := paths.ExpandHome(explicit)
		if _, err := os.Stat(expanded); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", explicit)
		}
		return expanded, nil
	}

	dir := paths.ConfigDir()
	for _, name := range []string{paths.ConfigFileName, paths.ConfigFileNameYAML} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// parserFor picks the parser from the file extension. Anything that
// is not YAML is treated as TOML.
func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Parser()
	}
	return toml.Parser()
}

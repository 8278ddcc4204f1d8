package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/paths"
	"github.com/arthur-debert/latch/pkg/types"
)

// defaultSourceRoot is the documented fallback when neither a config
// file nor an environment override names the source tree.
const defaultSourceRoot = "~/conf/central"

// Link declares one symlink to enforce, as written in a [[link]]
// block of latch.toml.
type Link struct {
	Name   string `koanf:"name" toml:"name"`
	Source string `koanf:"source" toml:"source"`
	Path   string `koanf:"path" toml:"path"`
}

// Config is the main configuration structure
type Config struct {
	// SourceRoot is the shared tree relative link sources resolve
	// against. Its absence on disk is a fatal error at run time, not
	// at load time.
	SourceRoot string `koanf:"source_root" toml:"source_root"`

	// OverrideMarker optionally names a marker file whose presence
	// status reports. Empty disables the probe.
	OverrideMarker string `koanf:"override_marker" toml:"override_marker"`

	// Links are the symlinks to enforce, in declaration order.
	Links []Link `koanf:"link" toml:"link,omitempty"`
}

// Default returns the configuration that applies when nothing else is
// found. It is the first two layers of Load with no file and no
// environment applied.
func Default() *Config {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(hardDefaults(), "."), nil)
	_ = k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser())

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return &Config{SourceRoot: defaultSourceRoot}
	}
	return &cfg
}

// Validate rejects configurations that cannot produce a coherent set
// of mappings. Emptiness and duplicate names are checked on the
// declared strings; link paths that collide only after expansion are
// caught in Resolve.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceRoot) == "" {
		return errors.New(errors.ErrConfigValid, "source_root must not be empty")
	}

	seen := make(map[string]bool, len(c.Links))
	for i, l := range c.Links {
		if err := paths.ValidateMappingName(l.Name); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "link %d has an invalid name", i+1)
		}
		if seen[l.Name] {
			return errors.Newf(errors.ErrConfigValid, "duplicate link name %q", l.Name)
		}
		seen[l.Name] = true

		if err := paths.ValidatePath(l.Source); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "link %q has an invalid source", l.Name)
		}
		if err := paths.ValidatePath(l.Path); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "link %q has an invalid path", l.Name)
		}
	}
	return nil
}

// Resolve turns the declared links into absolute mappings. Relative
// sources join the source root; absolute and tilde-prefixed entries
// stand alone. Two links resolving to the same link path would fight
// over one location, so that is rejected here rather than left for
// the enforcing run to discover.
func (c *Config) Resolve(p paths.Paths) ([]types.Mapping, error) {
	mappings := make([]types.Mapping, 0, len(c.Links))
	claimed := make(map[string]string, len(c.Links))

	for _, l := range c.Links {
		linkPath, err := p.NormalizePath(l.Path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "link %q has an unresolvable path", l.Name)
		}
		if prev, ok := claimed[linkPath]; ok {
			return nil, errors.Newf(errors.ErrConfigValid,
				"links %q and %q both claim %s", prev, l.Name, linkPath)
		}
		claimed[linkPath] = l.Name

		mappings = append(mappings, types.Mapping{
			Name:     l.Name,
			Source:   p.ResolveSource(l.Source),
			LinkPath: linkPath,
		})
	}
	return mappings, nil
}

// MarkerPath resolves the optional override marker against the source
// root. Empty means the probe is disabled.
func (c *Config) MarkerPath(p paths.Paths) string {
	if c.OverrideMarker == "" {
		return ""
	}
	return p.ResolveSource(c.OverrideMarker)
}

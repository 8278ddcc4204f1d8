// Package status wires configuration and the read-only reporter for
// the `latch status` command. It takes no lock and mutates nothing.
package status

import (
	"github.com/arthur-debert/latch/pkg/config"
	"github.com/arthur-debert/latch/pkg/filesystem"
	"github.com/arthur-debert/latch/pkg/logging"
	"github.com/arthur-debert/latch/pkg/paths"
	"github.com/arthur-debert/latch/pkg/status"
	"github.com/arthur-debert/latch/pkg/types"
)

// StatusOptions holds options for the status command
type StatusOptions struct {
	// ConfigPath is an explicit config file, empty for the standard
	// search locations
	ConfigPath string

	// FileSystem overrides the real filesystem
	FileSystem types.FS
}

// StatusResult carries the report plus configuration provenance.
type StatusResult struct {
	Report *types.StatusReport

	SourceRoot   string
	ConfigOrigin config.Origin
	ConfigPath   string
}

// Status loads configuration, resolves the declared links, and probes
// each one without touching the filesystem.
func Status(opts StatusOptions) (*StatusResult, error) {
	logger := logging.GetLogger("commands.status")

	loaded, err := config.Load(config.LoadOptions{Path: opts.ConfigPath})
	if err != nil {
		return nil, err
	}

	p, err := paths.New(loaded.Config.SourceRoot)
	if err != nil {
		return nil, err
	}

	mappings, err := loaded.Config.Resolve(p)
	if err != nil {
		return nil, err
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	report, err := status.New(fs).Report(mappings, loaded.Config.MarkerPath(p))
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("mappings", len(report.Mappings)).
		Bool("converged", report.Converged()).
		Msg("Status report built")

	return &StatusResult{
		Report:       report,
		SourceRoot:   p.SourceRoot(),
		ConfigOrigin: loaded.Origin,
		ConfigPath:   loaded.Path,
	}, nil
}

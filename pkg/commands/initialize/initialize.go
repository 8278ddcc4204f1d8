// Package initialize backs `latch init`: it renders the commented
// starter configuration and optionally writes it to the config dir.
package initialize

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/latch/pkg/config"
	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/logging"
	"github.com/arthur-debert/latch/pkg/paths"
)

// InitOptions holds options for the init command
type InitOptions struct {
	// Write persists the starter file instead of only returning it
	Write bool

	// Path overrides the target location, empty for the standard
	// config file path
	Path string
}

// InitResult reports what init produced.
type InitResult struct {
	// Content is the rendered starter configuration
	Content string

	// Path is where the file was, or would have been, written
	Path string

	// Written is true when a new file landed on disk. An existing
	// file is never overwritten.
	Written bool
}

// Init renders the starter configuration and, in write mode, places
// it at the config path unless a file already exists there.
func Init(opts InitOptions) (*InitResult, error) {
	logger := logging.GetLogger("commands.init")

	content, err := config.GenerateConfigContent()
	if err != nil {
		return nil, err
	}

	target := opts.Path
	if target == "" {
		target = filepath.Join(paths.ConfigDir(), paths.ConfigFileName)
	} else {
		target = paths.ExpandHome(target)
	}

	result := &InitResult{Content: content, Path: target}
	if !opts.Write {
		logger.Debug().Msg("Outputting starter config without writing")
		return result, nil
	}

	if _, err := os.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, not overwriting")
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create config directory for %s", target)
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to write starter config to %s", target)
	}

	logger.Info().Str("path", target).Msg("Written starter config")
	result.Written = true
	return result, nil
}

package config

import (
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/latch/pkg/errors"
)

// configHeader introduces the starter file written by `latch init`.
const configHeader = `# latch configuration.
#
# Uncomment and edit the values below, then run ` + "`latch enforce`" + `.
# Relative link sources resolve against source_root; ~ expands to your
# home directory in any path.

`

// starterConfig is the example configuration that init renders.
func starterConfig() *Config {
	cfg := Default()
	cfg.Links = []Link{{
		Name:   "global",
		Source: "global.md",
		Path:   "~/.config/assistant/global.md",
	}}
	return cfg
}

// GenerateConfigContent renders a fully commented starter config.
// Every value line is commented out so a freshly written file parses
// as empty and leaves the defaults in force.
func GenerateConfigContent() (string, error) {
	data, err := toml.Marshal(starterConfig())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render starter config")
	}
	return configHeader + commentOutConfigValues(string(data)), nil
}

// commentOutConfigValues comments every line that declares a value or
// opens a [[link]] block. An uncommented empty [[link]] block would
// parse as a link with no fields and fail validation, so the block
// headers are commented along with the values.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}

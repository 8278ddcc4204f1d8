package latch

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep declared configuration links converged"
	MsgEnforceShort    = "Create or repair every declared link"
	MsgStatusShort     = "Show how each declared link compares to disk"
	MsgInitShort       = "Print or write a starter configuration"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgInitWritten = "Wrote starter configuration to %s\n"
	MsgInitExists  = "Config file already exists at %s, leaving it untouched\n"

	// Error messages
	MsgErrEnforce    = "failed to enforce links: %w"
	MsgErrStatus     = "failed to report link status: %w"
	MsgErrInit       = "failed to generate configuration: %w"
	MsgErrPartialRun = "%d of %d mappings could not be enforced"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Path to the configuration file"
	MsgFlagFormat  = "Output format (auto, term, text, json)"
	MsgFlagDryRun  = "Report planned actions without touching the filesystem"
	MsgFlagWrite   = "Write the starter file instead of printing it"
	MsgFlagPath    = "Destination for the starter file (defaults to the standard config path)"
)

// Long messages
const (
	MsgRootLong = `latch keeps a small set of declared configuration links converged.
Every run compares each declared path against the filesystem and
creates, repairs, or leaves links until the machine matches the
declaration. Existing content is never destroyed: anything occupying a
declared path is moved to a timestamped backup before the link is
created.

See 'latch help topics' for the full documentation.`

	MsgEnforceLong = `Enforce walks every declared link in declaration order and
converges it: missing links are created, wrong targets are repointed,
and regular files occupying a declared path are moved to a timestamped
backup before the link is created. Links already pointing at their
source are left alone, so repeated runs perform no work.

A failed mapping never stops the rest of the run; its error is
reported on the outcome and reflected in the exit code. After the last
mapping every path is probed again, so the output shows what is
actually on disk.`

	MsgEnforceExample = `  # Converge every declared link
  latch enforce

  # See what would change without touching anything
  latch enforce --dry-run`

	MsgStatusLong = `Status classifies every declared link against the filesystem
without changing anything: active (link points at its source),
misdirected (link points somewhere else), or unlinked (nothing there,
or a regular file occupies the path). When an override marker is
configured its presence is reported too.`

	MsgStatusExample = `  # Human-readable table
  latch status

  # Machine-readable report
  latch status --format json`

	MsgInitLong = `Init renders a fully commented starter configuration. By default
the file is printed to stdout; with --write it is placed at the
standard config path, unless a file already exists there.`

	MsgInitExample = `  # Inspect the starter configuration
  latch init

  # Write it to the config directory
  latch init --write`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(latch completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ latch completion bash > /etc/bash_completion.d/latch
  # macOS:
  $ latch completion bash > /usr/local/etc/bash_completion.d/latch

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ latch completion zsh > "${fpath[1]}/_latch"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ latch completion fish | source
  # To load completions for each session, execute once:
  $ latch completion fish > ~/.config/fish/completions/latch.fish

PowerShell:
  PS> latch completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> latch completion powershell > latch.ps1
  # and source this file from your PowerShell profile.
`
)

// MsgUsageTemplate is cobra's stock usage template with the section
// headers run through the bold template helper.
const MsgUsageTemplate = `{{bold "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{bold "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{bold "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{bold "Available Commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold .Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

{{bold "Additional Commands:"}}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{bold "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{bold "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

{{bold "Additional help topics:"}}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

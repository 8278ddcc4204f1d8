package latch

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/latch/internal/version"
	"github.com/arthur-debert/latch/pkg/commands/enforce"
	"github.com/arthur-debert/latch/pkg/commands/initialize"
	statuscmd "github.com/arthur-debert/latch/pkg/commands/status"
	"github.com/arthur-debert/latch/pkg/config"
	"github.com/arthur-debert/latch/pkg/display"
	"github.com/arthur-debert/latch/pkg/logging"
	"github.com/arthur-debert/latch/pkg/topics"
	"github.com/arthur-debert/latch/pkg/types"
)

// ExitError carries a process exit status through cobra's error
// return, so main can exit with the reconciliation codes instead of a
// flat 1.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "latch",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given: show help but report the misuse
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().String("config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().String("format", "auto", MsgFlagFormat)

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"latch version {{.Version}}\n  commit: %s\n  built:  %s\n",
		version.Commit, version.Date))

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newEnforceCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	// Initialize topic-based help from the embedded documentation.
	// Logging is not configured yet, so a scan failure just leaves
	// the stock help in place.
	_ = topics.InitializeWithOptions(rootCmd, docTree(), topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	})

	return rootCmd
}

// outputFormat resolves the persistent --format flag
func outputFormat(cmd *cobra.Command) (display.Format, error) {
	name, _ := cmd.Root().PersistentFlags().GetString("format")
	return display.ParseFormat(name)
}

// configSource names where the effective configuration came from
func configSource(origin config.Origin, path string) string {
	if origin == config.OriginFile {
		return path
	}
	return "defaults"
}

func newEnforceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "enforce",
		Short:   MsgEnforceShort,
		Long:    MsgEnforceLong,
		Example: MsgEnforceExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Root().PersistentFlags().GetString("config")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Bool("dry_run", dryRun).
				Str("config", configPath).
				Msg("Enforcing declared links")

			result, err := enforce.Enforce(enforce.EnforceOptions{
				ConfigPath: configPath,
				DryRun:     dryRun,
			})
			if err != nil {
				return fmt.Errorf(MsgErrEnforce, err)
			}

			renderer := display.NewRenderer(cmd.OutOrStdout(), format)
			if err := renderer.RenderEnforce(display.RunView{
				Result:       result.Run,
				SourceRoot:   result.SourceRoot,
				ConfigSource: configSource(result.ConfigOrigin, result.ConfigPath),
			}); err != nil {
				return err
			}

			// The outcomes are already on screen; the error return
			// only carries the exit code and a one-line summary
			if code := result.Run.ExitCode(); code != types.EnforceExitOK {
				if ferr := result.FailureError(); ferr != nil {
					return &ExitError{Code: code, Err: ferr}
				}
				return &ExitError{Code: code, Err: fmt.Errorf(MsgErrPartialRun,
					len(result.Run.StepErrors()), len(result.Run.Outcomes))}
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, MsgFlagDryRun)

	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Root().PersistentFlags().GetString("config")

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			log.Info().Str("config", configPath).Msg("Reporting link status")

			result, err := statuscmd.Status(statuscmd.StatusOptions{
				ConfigPath: configPath,
			})
			if err != nil {
				return fmt.Errorf(MsgErrStatus, err)
			}

			renderer := display.NewRenderer(cmd.OutOrStdout(), format)
			return renderer.RenderStatus(display.StatusView{
				Report:       result.Report,
				SourceRoot:   result.SourceRoot,
				ConfigSource: configSource(result.ConfigOrigin, result.ConfigPath),
			})
		},
	}
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			target, _ := cmd.Flags().GetString("path")

			result, err := initialize.Init(initialize.InitOptions{
				Write: write,
				Path:  target,
			})
			if err != nil {
				return fmt.Errorf(MsgErrInit, err)
			}

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), result.Content)
				return nil
			}

			if result.Written {
				fmt.Fprintf(cmd.OutOrStdout(), MsgInitWritten, result.Path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), MsgInitExists, result.Path)
			}

			return nil
		},
	}

	cmd.Flags().Bool("write", false, MsgFlagWrite)
	cmd.Flags().String("path", "", MsgFlagPath)

	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man [dir]",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "/tmp"
			if len(args) > 0 {
				dir = args[0]
			}
			header := &doc.GenManHeader{
				Title:   "LATCH",
				Section: "1",
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}
}

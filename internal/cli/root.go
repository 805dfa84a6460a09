package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mvp-joe/code-outline/internal/config"
)

var (
	cfgFile string
	verbose bool
	flags   outlineFlags
)

// outlineFlags holds the root flags that are not plain config overrides.
type outlineFlags struct {
	allNodes bool
	output   string
	quiet    bool
	watch    bool
}

// flagBindings maps config keys to the flags that override them.
var flagBindings = map[string]string{
	"output.format":         "format",
	"output.annotate_files": "annotate",
	"outline.max_depth":     "max-depth",
	"processing.workers":    "workers",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "outline [paths...]",
	Short: "Extract compact structural outlines from source code",
	Long: `Outline parses source files and prints their structure: classes, functions,
methods, declarations and where they live, without the bodies.

Paths may be files, directories or glob patterns; with no paths the current
directory is outlined. Directories are walked with the include and ignore
patterns from .outline.yml.

The default compressed format aliases repeated path prefixes and node types
so large codebases fit in an LLM context window.

Examples:
  # Outline the current directory
  outline

  # Two levels deep as an indented tree
  outline src -d 2 -f text

  # Every syntax node, as JSON, to a file
  outline main.ts --all-nodes -f json -o main.json

  # Re-render whenever a source file changes
  outline src --watch`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runOutline,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .outline.yml in the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	addOutlineFlags(rootCmd.Flags(), &flags)
}

func addOutlineFlags(fs *pflag.FlagSet, f *outlineFlags) {
	fs.StringP("format", "f", "compressed", "output format: compressed (llm), text, json, yaml, dot")
	fs.IntP("max-depth", "d", 0, "maximum nesting depth to show (0 = unlimited)")
	fs.BoolVar(&f.allNodes, "all-nodes", false, "keep every syntax node instead of named declarations only")
	fs.Bool("annotate", false, "stamp named nodes with their file path")
	fs.Int("workers", 0, "files processed concurrently (0 = one per CPU)")
	fs.StringVarP(&f.output, "output", "o", "", "write output to a file instead of stdout")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "disable the progress bar and summary")
	fs.BoolVarP(&f.watch, "watch", "w", false, "re-render when source files change")
}

// loadConfig layers the command line over file and environment config.
func loadConfig(rootDir, configFile string, fs *pflag.FlagSet, f *outlineFlags, debug bool) (*config.Config, error) {
	cfg, err := config.NewLoader(rootDir, configFile, config.WithFlags(fs, flagBindings)).Load()
	if err != nil {
		return nil, err
	}
	if fs.Changed("all-nodes") {
		cfg.Outline.NamedOnly = !f.allNodes
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func runOutline(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(rootDir, cfgFile, cmd.Flags(), &flags, verbose)
	if err != nil {
		return err
	}

	r, err := newRunner(runnerConfig{
		RootDir: rootDir,
		Config:  cfg,
		Output:  flags.output,
		Quiet:   flags.quiet,
		Watch:   flags.watch,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer r.Close()

	if flags.watch {
		return r.watch(ctx, args)
	}
	return r.once(ctx, args)
}

// Command pixsnap records and compares bitmap snapshots from the shell.
//
// Usage:
//
//	pixsnap check actual.png --class ui.Widgets --name Button [--record]
//	pixsnap path --class ui.Widgets --name Button
//	pixsnap compare a.png b.png
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixsnap"
	"github.com/gogpu/pixsnap/bitmap"
)

// errFailed signals a reported snapshot failure; the message has already
// been printed.
var errFailed = errors.New("snapshot failed")

func main() {
	os.Exit(Main())
}

// Main runs the command and returns the process exit status.
func Main() int {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "pixsnap:", err)
		}
		return 1
	}
	return 0
}

type options struct {
	class        string
	name         string
	references   string
	runDir       string
	config       string
	record       bool
	separateDirs bool
	verbose      bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "pixsnap",
		Short: "Bitmap snapshot testing",
		Long: `pixsnap - bitmap snapshot testing

Record a PNG as the reference for a test, or compare a PNG byte-for-byte
against the recorded reference.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				pixsnap.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	identity := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&opts.class, "class", "", "Fully-qualified test class name (dot separated)")
		cmd.Flags().StringVar(&opts.name, "name", "", "Test name")
		cmd.Flags().StringVar(&opts.references, "references", "", "Reference directory (default from config)")
		cmd.Flags().BoolVar(&opts.separateDirs, "separate-dirs", false, "One directory per class name segment")
		cmd.Flags().StringVar(&opts.config, "config", "", "Config file (.toml, .yaml)")
		_ = cmd.MarkFlagRequired("class")
		_ = cmd.MarkFlagRequired("name")
	}

	checkCmd := &cobra.Command{
		Use:   "check <actual.png>",
		Short: "Record or compare a snapshot",
		Long: `Compare actual.png with the recorded reference, or record it with --record.

Exits with status 1 when the snapshot fails. Recording always fails so
that a forgotten --record flag is noticed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd.ErrOrStderr(), args[0], opts, cfg)
		},
	}
	identity(checkCmd)
	checkCmd.Flags().StringVar(&opts.runDir, "run-dir", "", "Directory for mismatch artifacts (default from config)")
	checkCmd.Flags().BoolVar(&opts.record, "record", false, "Record the reference instead of comparing")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the reference path of a test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			id := &pixsnap.Identity{Name: opts.name, ClassName: opts.class}
			fmt.Fprintln(cmd.OutOrStdout(), pixsnap.ReferencePath(cfg.ReferenceDir, id, cfg.SeparateDirectoriesPerNamespace))
			return nil
		},
	}
	identity(pathCmd)

	compareCmd := &cobra.Command{
		Use:   "compare <a.png> <b.png>",
		Short: "Compare two PNG files pixel for pixel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.OutOrStdout(), args[0], args[1])
		},
	}

	root.AddCommand(checkCmd, pathCmd, compareCmd)
	return root
}

// resolve builds the Config: defaults, then config file, then environment,
// then explicitly set flags.
func (o *options) resolve(cmd *cobra.Command) (pixsnap.Config, error) {
	cfg := pixsnap.DefaultConfig()
	if o.config != "" {
		var err error
		cfg, err = pixsnap.LoadConfig(o.config)
		if err != nil {
			return cfg, err
		}
	}
	cfg = cfg.FromEnv()

	flags := cmd.Flags()
	if flags.Changed("references") {
		cfg.ReferenceDir = o.references
	}
	if flags.Changed("run-dir") {
		cfg.RunDir = o.runDir
	}
	if flags.Changed("record") {
		cfg.RecordMode = o.record
	}
	if flags.Changed("separate-dirs") {
		cfg.SeparateDirectoriesPerNamespace = o.separateDirs
	}
	return cfg, nil
}

func runCheck(stderr io.Writer, actualPath string, opts options, cfg pixsnap.Config) error {
	actual, err := bitmap.LoadPNG(actualPath)
	if err != nil {
		return err
	}

	failed := false
	a := pixsnap.NewFileAdapter(cfg.ReferenceDir, pixsnap.ReporterFunc(func(msg string) {
		failed = true
		fmt.Fprintln(stderr, "FAIL:", msg)
	}))
	id := &pixsnap.Identity{Name: opts.name, RunDir: cfg.RunDir, ClassName: opts.class}

	if err := pixsnap.SnapshotBitmap(actual, a, id, cfg); err != nil {
		return err
	}
	for _, f := range id.ResultFiles() {
		fmt.Fprintln(stderr, "result file:", f)
	}
	if failed {
		return errFailed
	}
	return nil
}

func runCompare(stdout io.Writer, pathA, pathB string) error {
	a, err := bitmap.LoadPNG(pathA)
	if err != nil {
		return err
	}
	b, err := bitmap.LoadPNG(pathB)
	if err != nil {
		return err
	}
	if !bitmap.Equal(a, b) {
		fmt.Fprintln(stdout, "different")
		return errFailed
	}
	fmt.Fprintln(stdout, "equal")
	return nil
}

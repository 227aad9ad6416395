package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/md2docx/internal/configloader"
	"github.com/yaklabco/md2docx/internal/logging"
	"github.com/yaklabco/md2docx/pkg/config"
	"github.com/yaklabco/md2docx/pkg/convert"
	goldmarkparser "github.com/yaklabco/md2docx/pkg/parser/goldmark"
	"github.com/yaklabco/md2docx/pkg/reporter"
	"github.com/yaklabco/md2docx/pkg/runner"
)

// ErrConversionFailed is returned when at least one file could not be converted.
var ErrConversionFailed = errors.New("conversion failed")

type convertFlags struct {
	recursive bool
	outputDir string
	jobs      int
	codeFont  string
	flavor    string
	ignore    []string
	summary   bool
	table     bool
	format    string
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert Markdown files to Word documents",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	addConvertFlags(cmd, flags)

	return cmd
}

const convertLongDescription = `Convert Markdown files to Word (.docx) documents.

By default, converts every Markdown file in the current directory. Each
name.md is written next to its source as name.docx, replacing any existing
file. Specify paths to convert specific files or directories.

Examples:
  md2docx convert                       # Convert the current directory
  md2docx convert README.md             # Convert a single file
  md2docx convert docs/ --recursive     # Convert a directory tree
  md2docx convert -r --output-dir out   # Mirror the tree under out/
  md2docx convert --code-font Consolas  # Change the code font
  md2docx convert --summary             # Print totals when done
  md2docx convert --format json         # Machine-readable report`

func addConvertFlags(cmd *cobra.Command, flags *convertFlags) {
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "write outputs under this directory instead of next to the sources")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 1, "number of files converted concurrently")
	cmd.Flags().StringVar(&flags.codeFont, "code-font", config.DefaultCodeFont, "font family for inline code and code blocks")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorGFM), "Markdown flavor: gfm, commonmark")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a totals line when done")
	cmd.Flags().BoolVar(&flags.table, "table", false, "print a per-file table and a detailed summary when done")
	cmd.Flags().StringVar(&flags.format, "format", string(reporter.FormatText), "output format: text, json")
}

// cliConfig maps explicitly set flags onto a config overlay.
func (f *convertFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Recursive: f.recursive,
		OutputDir: f.outputDir,
		Ignore:    f.ignore,
	}
	changed := cmd.Flags().Changed
	if changed("code-font") {
		cfg.CodeFont = f.codeFont
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	return cfg
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    flags.cliConfig(cmd),
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldCodeFont, cfg.CodeFont,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldRecursive, cfg.Recursive,
		logging.FieldOutputDir, cfg.OutputDir,
	)

	outputDir := cfg.OutputDir
	if outputDir != "" && !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(workDir, outputDir)
	}

	converter := convert.New(goldmarkparser.New(string(cfg.Flavor)), convert.OptionsFromConfig(cfg))

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: flags.summary,
		ShowTable:   flags.table,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	batch := runner.New(converter)
	batch.OnOutcome = func(outcome runner.FileOutcome) {
		logOutcome(logger, outcome, workDir)
		if err := rep.Outcome(outcome); err != nil {
			logger.Error("failed to write output", logging.FieldError, err)
		}
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Recursive:    cfg.Recursive,
		Jobs:         cfg.Jobs,
		OutputDir:    outputDir,
	}

	logger.Debug("starting conversion run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := batch.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("conversion run failed"), err)
	}

	logger.Debug("conversion run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldDuration, result.Stats.Duration,
	)

	if result.Stats.FilesDiscovered == 0 {
		logger.Info("no Markdown files found", logging.FieldWorkingDir, workDir)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrConversionFailed
	}

	return nil
}

// logOutcome logs what a conversion absorbed. The console line itself is
// printed by the reporter.
func logOutcome(logger *log.Logger, outcome runner.FileOutcome, workDir string) {
	input := displayPath(outcome.Path, workDir)

	if outcome.Error != nil || outcome.Result == nil {
		logger.Debug("conversion failed", logging.FieldInput, input, logging.FieldError, outcome.Error)
		return
	}

	res := outcome.Result
	for _, warning := range res.Warnings {
		logger.Warn(warning, logging.FieldPath, input)
	}
	for _, fb := range res.Fallbacks {
		logger.Debug("image replaced by placeholder",
			logging.FieldPath, input,
			logging.FieldSource, fb.Source,
			logging.FieldAlt, fb.Alt,
			logging.FieldError, fb.Err,
		)
	}
	logger.Debug("converted",
		logging.FieldInput, input,
		logging.FieldOutput, displayPath(outcome.Output, workDir),
		logging.FieldBlocks, res.Stats.Blocks,
		logging.FieldImages, res.Stats.Images,
		logging.FieldPlaceholders, res.Stats.Placeholders,
		logging.FieldDuration, res.Duration,
	)
}

// displayPath returns path relative to base when it lies inside base.
func displayPath(path, base string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

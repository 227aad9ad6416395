package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/md2docx/internal/logging"
	"github.com/yaklabco/md2docx/pkg/config"
	"github.com/yaklabco/md2docx/pkg/fsutil"
)

// defaultConfigFile is the file written by init when no path is given.
const defaultConfigFile = ".md2docx.yml"

// ErrConfigExists is returned when init would overwrite a file without consent.
var ErrConfigExists = errors.New("configuration file already exists")

// stdinIsTerminal reports whether init may prompt before overwriting.
//
//nolint:gochecknoglobals // Replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// initFlags holds the flags for the init command.
type initFlags struct {
	force bool
	full  bool
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a md2docx configuration file",
		Long: `Create a configuration file with the default settings, commented.
The file is written to .md2docx.yml in the current directory unless a path
is given. An existing file is only replaced with --force or after
confirming at an interactive prompt.

Examples:
  md2docx init                 Create .md2docx.yml
  md2docx init --full          Write every setting with its default value
  md2docx init docs/md2docx.yml  Write to a custom path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), path, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting uncommented")

	return cmd
}

func runInit(ctx context.Context, in io.Reader, prompt io.Writer, path string, flags *initFlags) error {
	ctx = logging.WithFields(logging.WithLogger(ctx, logging.NewInteractive()), logging.FieldPath, path)
	logger := logging.FromContext(ctx)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		switch {
		case flags.force:
			logger.Warn("overwriting existing file")
		case stdinIsTerminal():
			ok, err := confirm(in, prompt, fmt.Sprintf("%s exists. Overwrite? [y/N] ", path))
			if err != nil {
				return err
			}
			if !ok {
				logger.Info("left existing file unchanged")
				return nil
			}
		default:
			return fmt.Errorf("%w: %q; use --force to overwrite", ErrConfigExists, path)
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file")
	logger.Info("customize the fonts, image width and ignore patterns by editing the file")

	return nil
}

// confirm asks question and reports whether the answer starts with y.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprint(out, question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

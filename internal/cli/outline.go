package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/cortex-outline/internal/outline"
	"github.com/mvp-joe/cortex-outline/internal/watcher"
)

var (
	outlineJSON  bool
	outlineWatch bool
)

// outlineCmd represents the outline command
var outlineCmd = &cobra.Command{
	Use:   "outline <file>...",
	Short: "Print the structural outline of one or more files",
	Long: `Parse each file and print its outline: imports, exports, types, classes,
functions and variables, plus template bindings and component options for Vue
single-file components. Positions are printed as row:column as reported by the
parser (rows and columns start at 0).

Example:
  cortex-outline outline src/app.ts
  cortex-outline outline --json src/components/Counter.vue
  cortex-outline outline --watch src/app.ts`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOutline,
}

func init() {
	outlineCmd.Flags().BoolVar(&outlineJSON, "json", false, "print the full fact record as JSON")
	outlineCmd.Flags().BoolVarP(&outlineWatch, "watch", "w", false, "print the outline again whenever a file changes")
	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg.Logging, verbose, cmd.ErrOrStderr())

	service, err := outline.NewService(cfg.ToOutlineConfig(), outline.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create outline service: %w", err)
	}
	defer service.Close()

	if err := writeOutlines(cmd, service, args, outlineJSON, cmd.OutOrStdout()); err != nil {
		return err
	}
	if !outlineWatch {
		return nil
	}
	return watchOutlines(cmd, service, args, logger)
}

// watchOutlines reprints the outline of each changed file until interrupted.
// A failing file is reported and watching continues.
func watchOutlines(cmd *cobra.Command, service *outline.Service, paths []string, logger *slog.Logger) error {
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Watch the files the service actually reads, which may live under a
	// configured root rather than the working directory.
	resolved := make([]string, 0, len(paths))
	for _, path := range paths {
		abs, err := service.Resolve(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		resolved = append(resolved, abs)
	}

	fw, err := watcher.NewFileWatcher(resolved, watcher.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to watch files: %w", err)
	}
	defer fw.Stop()

	w := cmd.OutOrStdout()
	err = fw.Start(ctx, func(changed []string) {
		for _, path := range changed {
			fmt.Fprintln(w)
			if err := writeOutlines(cmd, service, []string{path}, outlineJSON, w); err != nil {
				logger.Warn("outline failed", slog.String("path", path), slog.Any("error", err))
			}
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	logger.Info("watching for changes", slog.Int("files", len(paths)))
	<-ctx.Done()
	return nil
}

// writeOutlines prints one outline per path, separated by blank lines. It
// stops at the first failing path.
func writeOutlines(cmd *cobra.Command, service *outline.Service, paths []string, asJSON bool, w io.Writer) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(w)
		}

		if !asJSON {
			text, err := service.Summary(ctx, path)
			if err != nil {
				return err
			}
			fmt.Fprint(w, text)
			continue
		}

		result, err := service.AnalyzeFile(ctx, path)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]interface{}{"path": path, "result": result}); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}
	return nil
}


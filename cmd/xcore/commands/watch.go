package commands

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/teranos/xcore/am"
	"github.com/teranos/xcore/display"
	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/logger"
	"github.com/teranos/xcore/sym"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch <model.yaml>",
	Short: sym.Short("watch"),
	Long: `Export a model document, then watch it, its overrides sidecar and the
active xcore.toml. Any change re-exports the document after a quiet period
(watch.debounce_ms). A config change is validated before it takes effect.

Examples:
  xcore watch model.yaml --output gen
  xcore watch model.yaml --overrides model.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	WatchCmd.Flags().StringP("output", "o", "", "Output directory (default: export.output_dir)")
	WatchCmd.Flags().String("overrides", "", "TOML customizations sidecar (default: export.overrides)")
	WatchCmd.Flags().StringP("package", "p", "", "Export only the named package")
}

// modelWatch re-exports a model document on change. Exports are spaced
// by the limiter; model and config changes share it.
type modelWatch struct {
	mu      sync.Mutex
	req     exportRequest
	limiter *rate.Limiter
	out     func(*display.ExportSummary, error)
}

// run exports with the current request
func (w *modelWatch) run(ctx context.Context) {
	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	summary, err := exportModel(ctx, w.req)
	w.out(summary, err)
}

// reconfigure swaps in a reloaded config, keeping flag overrides
func (w *modelWatch) reconfigure(cfg *am.Config, flagOutput, flagOverrides string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.req.Config = cfg
	w.req.OutputDir = cfg.Export.OutputDir
	if flagOutput != "" {
		w.req.OutputDir = flagOutput
	}
	w.req.Overrides = cfg.Export.Overrides
	if flagOverrides != "" {
		w.req.Overrides = flagOverrides
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	req := requestFromFlags(cmd, args[0], cfg)
	if req.OutputDir == stdoutDir {
		return errors.WithHint(
			errors.NewInvalidConfigf("watch cannot write to stdout"),
			"pass --output with a directory")
	}
	flagOutput, _ := cmd.Flags().GetString("output")
	flagOverrides, _ := cmd.Flags().GetString("overrides")

	ctx, stop := signal.NotifyContext(logger.WithComponent(cmd.Context(), "watch"), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.ComponentLogger("watch")
	w := &modelWatch{
		req:     req,
		limiter: rate.NewLimiter(rate.Every(cfg.Watch.Debounce()), 1),
		out: func(summary *display.ExportSummary, err error) {
			if err != nil {
				pterm.Println(FormatError(err))
				return
			}
			if err := display.RenderSummary(cmd.OutOrStdout(), summary); err != nil {
				logger.Warnw("Failed to render summary", logger.FieldError, err)
			}
			pterm.Println()
		},
	}
	w.run(ctx)

	watcher, err := am.NewConfigWatcher(am.GetViper().ConfigFileUsed(), cfg.Watch.Debounce(), log)
	if err != nil {
		return err
	}
	if err := watcher.Watch(req.ModelPath); err != nil {
		_ = watcher.Stop()
		return err
	}
	if req.Overrides != "" {
		if err := watcher.Watch(req.Overrides); err != nil {
			_ = watcher.Stop()
			return err
		}
	}

	watcher.OnChange(func(path string) error {
		log.Infow("Model changed", logger.FieldFile, path)
		w.run(ctx)
		return nil
	})
	watcher.OnReload(func(newCfg *am.Config) error {
		w.reconfigure(newCfg, flagOutput, flagOverrides)
		w.run(ctx)
		return nil
	})

	am.SetGlobalWatcher(watcher)
	watcher.Start()
	pterm.Info.Printf("Watching %s (Ctrl+C to stop)\n", req.ModelPath)

	<-ctx.Done()
	am.SetGlobalWatcher(nil)
	return watcher.Stop()
}

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"gridcal/internal/config"
	"gridcal/internal/export"
	"gridcal/internal/layout"
	appLog "gridcal/internal/log"
	"gridcal/internal/model"
	"gridcal/internal/render"
	"gridcal/internal/web"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	listen     string
	schedule   string
	outDir     string
	once       bool
}

func main() {
	appLog.Info("gridcal starting", "version", "0.1.0")

	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI flags override the config file when provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.schedule != "" {
		conf.SchedulePath = flags.schedule
	}
	if flags.outDir != "" {
		conf.OutputDir = flags.outDir
	}
	conf.Normalize()

	appLog.Info("effective config",
		"listen", conf.Listen,
		"schedule", conf.SchedulePath,
		"output_dir", conf.OutputDir,
		"days", conf.Days,
		"aspect_slider", conf.AspectSlider,
		"pixel_ratio", conf.PixelRatio,
		"refresh", conf.RefreshCron,
		"once", flags.once,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	fonts := render.LoadFonts(conf.FontPath)
	defer fonts.Close()

	if flags.once {
		if err := runExport(ctx, conf, fonts); err != nil {
			appLog.Error("export failed", err)
			os.Exit(1)
		}
		return
	}

	// Serve mode: export once up front, then on the cron schedule, with the
	// preview API alongside.
	if err := runExport(ctx, conf, fonts); err != nil {
		appLog.Error("initial export failed", err)
	}

	sched := cron.New()
	if _, err := sched.AddFunc(conf.RefreshCron, func() {
		if err := runExport(ctx, conf, fonts); err != nil {
			appLog.Error("scheduled export failed", err)
		}
	}); err != nil {
		appLog.Error("invalid refresh schedule", err, "refresh", conf.RefreshCron)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:    conf.Listen,
		Handler: web.NewServer(conf).Handler(),
	}
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+conf.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("HTTP server failed", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP shutdown failed", err)
	}
	appLog.Info("gridcal exiting")
}

// runExport runs one full pipeline pass: load the schedule, solve the grid,
// build the surface, and export a PNG into the output directory.
func runExport(ctx context.Context, conf *config.Config, fonts *render.Fonts) error {
	entries, err := model.LoadEntries(conf.SchedulePath)
	if err != nil {
		return err
	}

	lc := conf.Layout()
	dims := layout.SolveForEntries(entries, lc, conf.Days)
	startHour, hourRange := layout.HourRange(entries)

	surface := render.BuildSurface(render.SurfaceSpec{
		Entries:    entries,
		Config:     lc,
		Dims:       dims,
		Theme:      themeFromConfig(conf.Theme),
		Title:      conf.Title,
		NumColumns: conf.Days,
		StartHour:  startHour,
		HourRange:  hourRange,
	})

	exp := export.New(export.FileSink(conf.OutputDir))
	exp.PixelRatio = conf.PixelRatio
	exp.Fonts = fonts
	return exp.Export(ctx, surface)
}

func themeFromConfig(tc config.ThemeConfig) render.Theme {
	return render.ResolveTheme(render.ThemeOverrides{
		Background: tc.Background,
		Panel:      tc.Panel,
		Text:       tc.Text,
		CardColors: tc.CardColors,
		CardBlur:   tc.CardBlur,
		Wallpaper:  tc.Wallpaper,
	})
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", defaultConfigPath(), "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.schedule, "schedule", "", "Path to schedule JSON (overrides config if set)")
	flag.StringVar(&cfg.outDir, "out", "", "Export output directory (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Export once and exit instead of serving")

	flag.Parse()

	return cfg
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "gridcal.yaml"
	}
	return home + "/.config/gridcal/config.yaml"
}

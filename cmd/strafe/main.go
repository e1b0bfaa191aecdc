package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/strafekit/strafe/config"
	"github.com/strafekit/strafe/oerror"
	"github.com/strafekit/strafe/recording"
	"github.com/strafekit/strafe/scenario"
	"github.com/strafekit/strafe/worker"
)

type options struct {
	settings  string
	logLevel  string
	out       string
	sentryDSN string
	statsview string
	workers   int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}

	root := &cobra.Command{
		Use:           "strafe",
		Short:         "Runs scripted locomotion scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.settings, "settings", "", "TOML or YAML settings file; the defaults are used if empty")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (trace logs every step of every tick)")
	root.PersistentFlags().StringVar(&opts.sentryDSN, "sentry-dsn", "", "report panicking scenarios to this sentry DSN")
	root.PersistentFlags().StringVar(&opts.statsview, "statsview", "", "serve runtime statistics on this address, e.g. localhost:8080")
	root.PersistentFlags().IntVar(&opts.workers, "workers", 0, "number of scenarios run at once; one per CPU if zero")

	run := &cobra.Command{
		Use:   "run <scenario>...",
		Short: "Run scenarios and log a summary of each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), log, opts, args, false)
		},
	}
	run.Flags().StringVar(&opts.out, "out", "", "directory to write a recording of every scenario to")

	verify := &cobra.Command{
		Use:   "verify <scenario>...",
		Short: "Run scenarios and compare their digests with the expected ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), log, opts, args, true)
		},
	}

	defaults := &cobra.Command{
		Use:   "defaults <path>",
		Short: "Write the default settings to a new TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SaveDefault(args[0]); err != nil {
				log.Error(err)
				return err
			}
			log.Infof("default settings written to %s", args[0])
			return nil
		},
	}

	root.AddCommand(run, verify, defaults)
	return root
}

// execute runs every scenario on a worker pool. In verify mode a scenario fails if its digest
// differs from the expected one.
func execute(ctx context.Context, log *logrus.Logger, opts *options, paths []string, verify bool) error {
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		log.Error(err)
		return err
	}
	log.Level = level

	if opts.sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: opts.sentryDSN}); err != nil {
			log.Errorf("unable to initialize sentry: %v", err)
			return err
		}
		defer sentry.Flush(time.Second * 5)
	}
	if opts.statsview != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(opts.statsview))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	settings := config.DefaultSettings()
	if opts.settings != "" {
		if settings, err = config.Load(opts.settings); err != nil {
			log.Error(err)
			return err
		}
	}
	if opts.out != "" {
		if err := os.MkdirAll(opts.out, 0755); err != nil {
			log.Errorf("unable to create output directory: %v", err)
			return err
		}
	}

	pool := worker.NewPool(ctx, opts.workers, log)
	for _, path := range paths {
		err := pool.Submit(worker.Task{Name: path, Run: func(ctx context.Context) error {
			return runScenario(ctx, log, settings, opts.out, path, verify)
		}})
		if err != nil {
			break
		}
	}

	results := pool.Close()
	for _, r := range results {
		if r.Err != nil {
			log.WithField("scenario", r.Name).Error(r.Err)
		}
	}
	log.Infof("%d scenarios finished, %d failed", pool.Completed(), pool.Failed())
	if pool.Failed() > 0 {
		return oerror.New("%d of %d scenarios failed", pool.Failed(), pool.Submitted())
	}
	return nil
}

func runScenario(ctx context.Context, log *logrus.Logger, settings config.Settings, out, path string, verify bool) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	rec, err := scenario.Run(ctx, sc, settings, log)
	if err != nil {
		return err
	}

	digest := scenario.FormatDigest(rec.Digest())
	if verify {
		if sc.ExpectedDigest == "" {
			return oerror.New("scenario %q has no expected digest", sc.Name)
		}
		if err := scenario.Verify(sc, rec); err != nil {
			return err
		}
		log.WithField("scenario", sc.Name).Infof("digest %s verified", digest)
		return nil
	}

	logSummary(log, sc.Name, digest, rec.Summarize())
	if out != "" {
		if err := rec.Save(filepath.Join(out, sc.Name+".rec")); err != nil {
			return err
		}
	}
	return nil
}

func logSummary(log *logrus.Logger, name, digest string, s recording.Summary) {
	log.WithFields(logrus.Fields{
		"scenario":  name,
		"digest":    digest,
		"ticks":     s.Ticks,
		"duration":  fmt.Sprintf("%.2fs", s.Duration),
		"distance":  fmt.Sprintf("%.2f", s.Distance),
		"speed":     fmt.Sprintf("%.2f±%.2f (median %.2f, max %.2f)", s.MeanSpeed, s.SpeedDev, s.MedianSpeed, s.MaxSpeed),
		"jumps":     s.Jumps,
		"air_time":  fmt.Sprintf("%.2fs", s.AirTime),
		"slide":     fmt.Sprintf("%.2fs", s.SlideTime),
		"footsteps": s.Footsteps,
	}).Info("scenario finished")
}

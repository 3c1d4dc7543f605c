package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/Koster99/personal-asistant/cli/config"
	"github.com/Koster99/personal-asistant/cli/logger"
	"github.com/Koster99/personal-asistant/cli/shell"
	"github.com/Koster99/personal-asistant/datastores"
	"github.com/Koster99/personal-asistant/views"
)

var version = "dev" //nolint: gochecknoglobals // set by -ldflags

// Options for the CLI. Pass `--store` or set the `SERVICE_STORE` env var.
// Non-empty options override the config file.
type Options struct {
	Config      string `doc:"config file (default config.yaml in . or the user config dir)" short:"c"`
	Store       string `doc:"address book file, .json and .yaml select the format"          short:"s"`
	Autosave    bool   `doc:"save the address book on exit"`
	MetricsFile string `doc:"write metrics in Prometheus text format to file on exit"`
	LogLevel    string `doc:"log from debug, info, warn or error"`
	LogFile     string `doc:"append logs to file"`
	LogFormat   string `doc:"format logs as text or json"`
}

// merge overrides cfg with the options that were set.
func (o *Options) merge(cfg *config.Config) {
	override(&cfg.Store, o.Store)
	override(&cfg.MetricsFile, o.MetricsFile)
	override(&cfg.Log.Level, o.LogLevel)
	override(&cfg.Log.File, o.LogFile)
	override(&cfg.Log.Format, o.LogFormat)
	cfg.Autosave = cfg.Autosave || o.Autosave
}

func override(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		cfg, err := config.Load(options.Config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		options.merge(cfg)

		log := logger.New(&logger.Options{Level: cfg.Log.Level, File: cfg.Log.File, Format: cfg.Log.Format})
		metriks := metrics.NewSet()
		sh := &shell.Shell{
			Book:     datastores.NewAddressBook(),
			View:     views.NewConsole(os.Stdout),
			Store:    cfg.Store,
			Autosave: cfg.Autosave,
			Prompt:   os.Stdout,
			Logger:   log,
			Metrics:  metriks,
		}

		ctx, cancel := context.WithCancel(context.Background())
		var once sync.Once
		finish := func(interrupted bool) {
			once.Do(func() {
				cancel()
				if interrupted && cfg.Autosave {
					// waits for the command in flight, if any
					_ = sh.SaveBook(context.WithoutCancel(ctx))
				}
				if cfg.MetricsFile != "" {
					err := shell.WriteMetricsFile(cfg.MetricsFile, metriks, version)
					if err != nil {
						log.Warn("could not write metrics", "err", err)
					}
				}
			})
		}

		hooks.OnStart(func() {
			err := sh.Book.LoadFile(cfg.Store)
			if err != nil {
				log.Error("could not load address book", "err", err)
				os.Exit(1)
			}
			log.Info("address book loaded", "file", cfg.Store, "contacts", sh.Book.Len())

			sh.View.RenderCommandList(shell.Commands())
			err = sh.Run(ctx, os.Stdin)
			if err != nil {
				log.Error("shell stopped", "err", err)
			}
			finish(false)
		})
		hooks.OnStop(func() {
			finish(true)
		})
	})

	cli.Root().Use = "addressbook"
	cli.Root().Short = "Personal contact manager"
	cli.Root().Version = version
	cli.Run()
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Xunop/book-faker/internal/cache"
	"github.com/Xunop/book-faker/internal/config"
	"github.com/Xunop/book-faker/internal/export"
	"github.com/Xunop/book-faker/internal/generator"
	"github.com/Xunop/book-faker/internal/log"
	"github.com/Xunop/book-faker/internal/model"
	"github.com/Xunop/book-faker/internal/server"
	"github.com/Xunop/book-faker/internal/storage"
	"github.com/Xunop/book-faker/internal/textsource"
	"github.com/Xunop/book-faker/internal/validator"
	"github.com/Xunop/book-faker/internal/version"
	"github.com/Xunop/book-faker/internal/worker"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	greetingBanner = `
 _                 _            __       _
| |__   ___   ___ | | __       / _| __ _| | _____ _ __
| '_ \ / _ \ / _ \| |/ /_____ | |_ / _' | |/ / _ \ '__|
| |_) | (_) | (_) |   <______||  _| (_| |   <  __/ |
|_.__/ \___/ \___/|_|\_\      |_|  \__,_|_|\_\___|_|
`
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:               "book-faker",
		Short:             "book-faker serves reproducible pages of fake books",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		RunE:              runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate pages of books and print or save them",
		RunE:  runGenerate,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// No config is needed to print the version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetCurrentVersion())
		},
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (toml, yaml or json)")
	flags.String("host", "", "host to listen on")
	flags.Int("port", 0, "port to listen on")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("redis-url", "", "redis url of the shared page cache")
	bindFlags(flags, map[string]string{
		"host":      "host",
		"port":      "port",
		"log_level": "log-level",
		"redis_url": "redis-url",
	})

	gf := generateCmd.Flags()
	gf.String("locale", "", "locale of the generated text (en, de, ja)")
	gf.Int64("seed", 0, "seed of the catalog")
	gf.Int("page", 0, "first page to generate")
	gf.Float64("likes", 0, "average likes per book")
	gf.Float64("reviews", 0, "average reviews per book")
	gf.String("format", string(export.FormatJSON), "output format: json, csv or epub")
	gf.Int("pages", 1, "number of consecutive pages")
	gf.StringP("output", "o", "", "write to this file instead of stdout, never overwriting")
	gf.Bool("save", false, "save into export_dir under a generated name")

	rootCmd.AddCommand(serveCmd, generateCmd, versionCmd)
}

func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := config.Viper().BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if _, err := config.GetConfig(configFile); err != nil {
		return errors.Wrap(err, "unable to load config")
	}
	log.Init()
	log.Debug("Config loaded", zap.Any("options", config.Opts))
	return nil
}

func newGenerator() (*generator.Generator, error) {
	provider, err := textsource.NewProvider()
	if err != nil {
		return nil, errors.Wrap(err, "unable to load text corpora")
	}
	return generator.New(provider), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := config.Opts
	fmt.Fprint(os.Stderr, greetingBanner)

	gen, err := newGenerator()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pageCache := cache.New(ctx, opts.RedisURL, time.Duration(opts.CacheTTL)*time.Second, opts.CacheSize)
	srv, err := server.StartServer(opts, gen, pageCache)
	if err != nil {
		return errors.Wrap(err, "unable to start server")
	}

	select {
	case <-ctx.Done():
		log.Info("Shutting down", zap.Int("timeout_seconds", opts.ShutdownTimeout))
	case err := <-srv.Err():
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(opts.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "unable to shut down cleanly")
	}
	if c, ok := pageCache.(*cache.Redis); ok {
		_ = c.Close()
	}
	log.Info("Server stopped")
	return nil
}

func generationRequest(cmd *cobra.Command, opts *config.Options) (model.GenerationRequest, error) {
	flags := cmd.Flags()
	req := model.GenerationRequest{
		Locale:         opts.DefaultLocale,
		Seed:           opts.DefaultSeed,
		AverageLikes:   opts.DefaultLikes,
		AverageReviews: opts.DefaultReviews,
	}

	var err error
	if flags.Changed("locale") {
		if req.Locale, err = flags.GetString("locale"); err != nil {
			return req, err
		}
	}
	if flags.Changed("seed") {
		if req.Seed, err = flags.GetInt64("seed"); err != nil {
			return req, err
		}
	}
	if req.Page, err = flags.GetInt("page"); err != nil {
		return req, err
	}
	if flags.Changed("likes") {
		if req.AverageLikes, err = flags.GetFloat64("likes"); err != nil {
			return req, err
		}
	}
	if flags.Changed("reviews") {
		if req.AverageReviews, err = flags.GetFloat64("reviews"); err != nil {
			return req, err
		}
	}

	return req, validator.ValidateGenerationRequest(&req, opts.MaxAverage)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := config.Opts
	flags := cmd.Flags()

	req, err := generationRequest(cmd, opts)
	if err != nil {
		return err
	}

	formatFlag, _ := flags.GetString("format")
	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	if !config.CheckExportFormat(string(format)) {
		return errors.Errorf("export format %s is disabled", format)
	}

	pages, _ := flags.GetInt("pages")
	if err := validator.ValidateExportRequest(pages, opts.MaxExportPages); err != nil {
		return err
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}
	pool := worker.NewPagePool(gen, opts.WorkerPoolSize)
	defer pool.Close()

	books, err := pool.GeneratePages(cmd.Context(), req, req.Page, pages)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, export.Title(req, pages), req.Locale, books); err != nil {
		return err
	}

	output, _ := flags.GetString("output")
	save, _ := flags.GetBool("save")
	var store storage.Storage
	var name string
	switch {
	case output != "":
		store = storage.NewLocalStorage(filepath.Dir(output))
		name = filepath.Base(output)
	case save:
		dir, err := config.CheckExportDir(opts.ExportDir)
		if err != nil {
			return err
		}
		store = storage.NewLocalStorage(dir)
		name = export.FileName(req, pages, format)
	default:
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	location, err := store.Save(name, buf.Bytes())
	if err != nil {
		return err
	}
	log.Info("Books saved", zap.String("path", location), zap.Int("books", len(books)))
	return nil
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		log.Error("Command failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/i18n"
	"taskdeck/internal/kv"
	"taskdeck/internal/store"
	"taskdeck/internal/ui"
)

var Version = "dev"

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskdeck",
		Short:   "taskdeck - a local task list with an offline asset cache",
		Version: Version,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default taskdeck.yaml)")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(lsCmd())
	rootCmd.AddCommand(doneCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(langCmd())
	rootCmd.AddCommand(themeCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(cacheCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app wires together the pieces every task command needs.
type app struct {
	cfg   config.Config
	kv    kv.Store
	store *store.Store
	prefs *store.Prefs
	tr    *i18n.Translator
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	kvs, err := openKV(cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, kvs, time.Now)
	if err != nil {
		if !errors.Is(err, store.ErrCorruptData) {
			return nil, err
		}
		// Recoverable: the store reseeded itself with the samples.
		ui.Fail("stored tasks were unreadable; starting over with samples")
	}

	prefs := store.NewPrefs(kvs)
	tr := i18n.New(prefs.Language(ctx, cfg.Language))
	go tr.Init()
	if err := tr.WaitReady(ctx.Done(), time.Second); err != nil {
		return nil, err
	}

	return &app{cfg: cfg, kv: kvs, store: st, prefs: prefs, tr: tr}, nil
}

func openKV(cfg config.Config) (kv.Store, error) {
	switch cfg.StorageBackend {
	case "file", "":
		return kv.NewFile(cfg.StorageDir)
	case "redis":
		return kv.NewRedis(cfg.RedisAddr), nil
	case "memory":
		return kv.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

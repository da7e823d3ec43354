package main

import (
	"log"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/offline"
	"taskdeck/internal/web"
)

func serveCmd() *cobra.Command {
	var policyFlag, versionFlag string
	var skipWaiting bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve app assets through the offline cache controller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			ctrl, buckets, err := buildController(cfg, policyFlag, versionFlag)
			if err != nil {
				return err
			}
			defer buckets.Close()
			if skipWaiting {
				ctrl.HandleMessage(offline.Message{Type: offline.MessageSkipWaiting})
			}

			ctx := cmd.Context()
			if err := ctrl.Install(ctx); err != nil {
				return err
			}
			if err := ctrl.Activate(ctx); err != nil {
				return err
			}
			log.Printf("cache %s %s, policy %s", ctrl.Version(), ctrl.State(), ctrl.Policy())

			srv := web.NewServer(ctrl, cfg.ServeOrigin)
			log.Printf("serving %s on %s (origin %s)", ctrl.Scope(), cfg.ServeAddr, cfg.ServeOrigin)
			return srv.Router().Run(cfg.ServeAddr)
		},
	}

	cmd.Flags().StringVar(&policyFlag, "policy", "", "cache-first|network-first (default from config)")
	cmd.Flags().StringVar(&versionFlag, "cache-version", "", "override the cache version tag")
	cmd.Flags().BoolVar(&skipWaiting, "skip-waiting", false, "supersede a previous version immediately")
	return cmd
}

func loadManifest(cfg config.Config) (offline.Manifest, error) {
	if cfg.ManifestPath == "" {
		return offline.DefaultManifest(), nil
	}
	return offline.LoadManifest(cfg.ManifestPath)
}

// buildController assembles the controller over a SQLite bucket store.
// The store is returned too so one-shot commands can close it.
func buildController(cfg config.Config, policyFlag, versionFlag string) (*offline.Controller, *offline.SQLiteBuckets, error) {
	manifest, err := loadManifest(cfg)
	if err != nil {
		return nil, nil, err
	}
	if versionFlag != "" {
		manifest.Version = versionFlag
	}

	policyName := cfg.CachePolicy
	if policyFlag != "" {
		policyName = policyFlag
	}
	policy, err := offline.ParsePolicy(policyName)
	if err != nil {
		return nil, nil, err
	}

	buckets, err := offline.NewSQLiteBuckets(cfg.CacheDB)
	if err != nil {
		return nil, nil, err
	}

	ctrl, err := offline.New(offline.Config{
		Manifest: manifest,
		Buckets:  buckets,
		Origin:   cfg.ServeOrigin,
		Policy:   policy,
	})
	if err != nil {
		buckets.Close()
		return nil, nil, err
	}
	return ctrl, buckets, nil
}

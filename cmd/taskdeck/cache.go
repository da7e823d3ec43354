package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/offline"
	"taskdeck/internal/ui"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the offline asset cache",
	}
	cmd.AddCommand(cacheWarmCmd())
	cmd.AddCommand(cacheEvictCmd())
	cmd.AddCommand(cacheStatusCmd())
	return cmd
}

func cacheWarmCmd() *cobra.Command {
	var versionFlag string

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Pre-populate the cache with the manifest assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			ctrl, buckets, err := buildController(cfg, "", versionFlag)
			if err != nil {
				return err
			}
			defer buckets.Close()
			if err := ctrl.Install(cmd.Context()); err != nil {
				return err
			}
			ui.OK("cache " + ctrl.Version() + " populated")
			return nil
		},
	}
	cmd.Flags().StringVar(&versionFlag, "cache-version", "", "override the cache version tag")
	return cmd
}

func cacheEvictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evict",
		Short: "Delete cache buckets from older versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			ctrl, buckets, err := buildController(cfg, "", "")
			if err != nil {
				return err
			}
			defer buckets.Close()
			if err := ctrl.Activate(cmd.Context()); err != nil {
				return err
			}
			ui.OK("kept only " + ctrl.Version())
			return nil
		},
	}
}

func cacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List cache buckets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			buckets, err := offline.NewSQLiteBuckets(cfg.CacheDB)
			if err != nil {
				return err
			}
			defer buckets.Close()

			manifest, err := loadManifest(cfg)
			if err != nil {
				return err
			}
			names, err := buckets.Names(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("no cache buckets")
				return nil
			}
			for _, name := range names {
				marker := " "
				if name == manifest.Version {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, name)
			}
			return nil
		},
	}
}

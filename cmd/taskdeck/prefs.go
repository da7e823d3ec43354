package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/internal/i18n"
	"taskdeck/internal/store"
	"taskdeck/internal/ui"
)

func langCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang [code]",
		Short: "Show or set the display language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Printf("current: %s (%s)\n", app.tr.Language(), i18n.LanguageName(app.tr.Language()))
				for _, code := range i18n.Supported {
					fmt.Printf("  %s  %s\n", code, i18n.LanguageName(code))
				}
				return nil
			}

			code := args[0]
			if err := app.tr.SetLanguage(code); err != nil {
				ui.Fail("unsupported language: " + code)
				return nil
			}
			if err := app.prefs.SetLanguage(cmd.Context(), code); err != nil {
				return err
			}
			ui.OK("language set to " + i18n.LanguageName(code))
			return nil
		},
	}
}

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Show or set the color theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Println(app.prefs.Theme(cmd.Context()))
				return nil
			}
			theme := args[0]
			if theme != store.ThemeDark && theme != store.ThemeLight {
				return fmt.Errorf("theme must be %s or %s", store.ThemeDark, store.ThemeLight)
			}
			if err := app.prefs.SetTheme(cmd.Context(), theme); err != nil {
				return err
			}
			ui.OK("theme set to " + theme)
			return nil
		},
	}
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/store"
	"taskdeck/internal/task"
	"taskdeck/internal/ui"
)

func addCmd() *cobra.Command {
	var priority, category, due, notes string

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			t, err := app.store.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				ui.Fail("add: empty title")
				return nil
			}

			patch, err := buildPatch("", priority, category, due, notes)
			if err != nil {
				return err
			}
			if patch != (store.Patch{}) {
				if _, err := app.store.Update(cmd.Context(), t.ID, patch); err != nil {
					return err
				}
			}
			ui.OK(fmt.Sprintf("added #%d", t.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "", "high|medium|low")
	cmd.Flags().StringVarP(&category, "category", "c", "", "work|personal|health|learning")
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date ("+task.DateLayout+")")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes")
	return cmd
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			app.store.OnComplete(func(t task.Task) {
				fmt.Println("🎉 " + app.tr.T("celebration.message"))
			})

			t, err := app.store.ToggleComplete(cmd.Context(), id)
			if err != nil {
				ui.Fail("done: no task with id " + args[0])
				return nil
			}
			if t.Completed {
				ui.OK("completed: " + t.Title)
			} else {
				ui.OK("reopened: " + t.Title)
			}
			return nil
		},
	}
}

func editCmd() *cobra.Command {
	var title, priority, category, due, notes string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patch, err := buildPatch("", priority, category, "", "")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("due") {
				patch.DueDate = &due
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if patch == (store.Patch{}) {
				return fmt.Errorf("edit: nothing to change")
			}
			if _, err := app.store.Update(cmd.Context(), id, patch); err != nil {
				ui.Fail("edit: no task with id " + args[0])
				return nil
			}
			ui.OK("updated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "high|medium|low")
	cmd.Flags().StringVarP(&category, "category", "c", "", "work|personal|health|learning")
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date ("+task.DateLayout+"), empty clears")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes")
	return cmd
}

func rmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes && !ui.NewStdinConfirmer().Confirm(app.tr.T("confirm.delete")) {
				return nil
			}
			if err := app.store.Delete(cmd.Context(), id); err != nil {
				ui.Fail("rm: no task with id " + args[0])
				return nil
			}
			ui.OK("removed")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a task id: %s", s)
	}
	return id, nil
}

// buildPatch validates flag values into a store.Patch. Title is
// handled by the caller since an explicit empty title is meaningful.
func buildPatch(_, priority, category, due, notes string) (store.Patch, error) {
	var p store.Patch
	if priority != "" {
		pr := task.Priority(priority)
		if !pr.Valid() {
			return p, fmt.Errorf("invalid priority %q", priority)
		}
		p.Priority = &pr
	}
	if category != "" {
		cat := task.Category(category)
		if !cat.Valid() {
			return p, fmt.Errorf("invalid category %q", category)
		}
		p.Category = &cat
	}
	if due != "" {
		p.DueDate = &due
	}
	if notes != "" {
		p.Notes = &notes
	}
	return p, nil
}

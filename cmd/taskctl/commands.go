package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskboard/internal/client/dashboard"
	"taskboard/internal/client/model"
	"taskboard/internal/client/taskform"
	"taskboard/internal/client/tasklist"
	"taskboard/internal/client/tui"
	"taskboard/internal/core/domain"
	"taskboard/internal/suggest"
)

func listCmd(a *app) *cobra.Command {
	var (
		filter  = tasklist.DefaultFilter()
		sortKey string
		desc    bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, filtered and sorted like the dashboard.

Examples:
  taskctl list --status todo --sort dueDate
  taskctl list --search "release" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := tasklist.ParseKey(sortKey)
			if !ok {
				return fmt.Errorf("unknown sort key %q", sortKey)
			}
			if !tasklist.ValidStatusFilter(filter.Status) || !tasklist.ValidPriorityFilter(filter.Priority) {
				return fmt.Errorf("%w: status=%q priority=%q", dashboard.ErrInvalidFilter, filter.Status, filter.Priority)
			}
			sort := tasklist.Sort{Key: key, Direction: tasklist.Asc}
			if desc {
				sort.Direction = tasklist.Desc
			}

			tasks, err := a.newAPI(a).List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list tasks: %w", err)
			}
			view := tasklist.Apply(tasks, filter, sort)

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			fmt.Fprintln(out, tui.RenderTable(view, -1, sort, 0))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Status, "status", "s", tasklist.All, "status filter (all, todo, in-progress, done, canceled)")
	cmd.Flags().StringVarP(&filter.Priority, "priority", "p", tasklist.All, "priority filter (all, low, medium, high)")
	cmd.Flags().StringVarP(&filter.Search, "search", "q", "", "case-insensitive title substring")
	cmd.Flags().StringVar(&sortKey, "sort", string(tasklist.DefaultSort().Key), "sort key (id, title, description, dueDate, priority, status, userId)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")

	return cmd
}

// formFlags binds the editable fields of a task form to command flags.
type formFlags struct {
	title       string
	description string
	due         string
	priority    string
	status      string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "task title (2-100 characters)")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&f.due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "priority (low, medium, high)")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "status (todo, in-progress, done, canceled)")
}

// apply copies the flags the user set onto form.
func (f *formFlags) apply(cmd *cobra.Command, form *taskform.Form) {
	changed := cmd.Flags().Changed
	if changed("title") {
		form.Title = f.title
	}
	if changed("description") {
		form.Description = f.description
	}
	if changed("due") {
		form.DueDate = f.due
	}
	if changed("priority") {
		form.Priority = f.priority
	}
	if changed("status") {
		form.Status = f.status
	}
}

func addCmd(a *app) *cobra.Command {
	var flags formFlags
	var suggestPriority bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api := a.newAPI(a)
			form := taskform.New()
			flags.apply(cmd, form)

			if suggestPriority && !cmd.Flags().Changed("priority") {
				if _, err := form.SuggestPriority(cmd.Context(), api); err != nil {
					return err
				}
			}

			task, err := form.Submit(cmd.Context(), api)
			if err != nil {
				return formError(err)
			}
			printTask(cmd, "created", task)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&suggestPriority, "suggest", false, "ask the server for a priority based on the description")

	return cmd
}

func editCmd(a *app) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Replace fields of an existing task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := a.newAPI(a)
			tasks, err := api.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list tasks: %w", err)
			}

			var form *taskform.Form
			for _, task := range tasks {
				if task.SameID(args[0]) {
					form = taskform.FromTask(task)
					break
				}
			}
			if form == nil {
				return fmt.Errorf("%w: %s", dashboard.ErrUnknownTask, args[0])
			}

			flags.apply(cmd, form)
			task, err := form.Submit(cmd.Context(), api)
			if err != nil {
				return formError(err)
			}
			printTask(cmd, "updated", task)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.NormalizeID(args[0])
			if err := a.newAPI(a).Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete task %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}

func suggestCmd(a *app) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "suggest [description]",
		Short: "Suggest a priority for a task description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.TrimSpace(strings.Join(args, " "))
			if description == "" {
				return errors.New(taskform.MsgEmptyDescription)
			}

			if local {
				suggester, err := suggest.FromConfig(a.cfg, a.logger)
				if err != nil {
					return err
				}
				priority, err := suggester.Suggest(cmd.Context(), description)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), priority)
				return nil
			}

			priority, err := a.newAPI(a).SuggestPriority(cmd.Context(), description)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), priority)
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "classify in-process with the configured suggester instead of calling the server")

	return cmd
}

func uiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := dashboard.New(a.newAPI(a), dashboard.WithLogger(a.logger))
			defer ctrl.Close()

			program := tea.NewProgram(tui.New(cmd.Context(), ctrl), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}
}

func printTask(cmd *cobra.Command, verb string, task model.Task) {
	due := "-"
	if task.DueDate != nil {
		due = domain.FormatDate(*task.DueDate)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s (due %s, %s, %s)\n", verb, task.ID, task.Title, due, task.Priority, task.Status)
}

func formError(err error) error {
	var verr *taskform.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	var b strings.Builder
	b.WriteString("invalid task:")
	for _, field := range []string{"title", "description", "dueDate", "priority", "status"} {
		if msg, ok := verr.Fields[field]; ok {
			b.WriteString("\n  ")
			b.WriteString(msg)
		}
	}
	return errors.New(b.String())
}

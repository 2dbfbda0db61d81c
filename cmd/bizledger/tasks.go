package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bizledger/internal/cli"
	"bizledger/internal/core"
	"bizledger/internal/tasks"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}
	cmd.AddCommand(tasksListCmd())
	cmd.AddCommand(tasksSummaryCmd())
	cmd.AddCommand(tasksAddCmd())
	cmd.AddCommand(tasksUpdateCmd())
	cmd.AddCommand(tasksCompleteCmd())
	cmd.AddCommand(tasksDeleteCmd())
	cmd.AddCommand(tasksCategoriesCmd())
	return cmd
}

func tasksListCmd() *cobra.Command {
	var status, priority, category, query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := tasks.Filter{
				Status:   core.Status(status),
				Priority: core.Priority(priority),
				Category: category,
				Query:    query,
			}
			if filter.Status != "" && !filter.Status.Valid() {
				return fmt.Errorf("%w: %q", core.ErrInvalidStatus, status)
			}
			if filter.Priority != "" && !filter.Priority.Valid() {
				return fmt.Errorf("%w: %q", core.ErrInvalidPriority, priority)
			}
			cli.RenderTasks(cmd.OutOrStdout(), filter.Apply(app.stores.Tasks.Tasks()))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "pending, in-progress or completed")
	cmd.Flags().StringVar(&priority, "priority", "", "high, medium or low")
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search title and description")
	return cmd
}

func tasksSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show task counts and completion rate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.RenderTaskSummary(cmd.OutOrStdout(), tasks.Summarize(app.stores.Tasks.Tasks()))
			return nil
		},
	}
}

func tasksAddCmd() *cobra.Command {
	var description, priority, status, due, category string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := core.Task{
				Title:       strings.TrimSpace(args[0]),
				Description: description,
				Priority:    core.Priority(priority),
				Status:      core.Status(status),
				Category:    category,
			}
			if due != "" {
				d, err := core.ParseDate(due)
				if err != nil {
					return err
				}
				t.DueDate = d
			}
			if err := t.Validate(); err != nil {
				return err
			}
			added, err := app.stores.Tasks.AddTask(t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render("added task "+added.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringVar(&priority, "priority", string(core.PriorityMedium), "high, medium or low")
	cmd.Flags().StringVar(&status, "status", string(core.StatusPending), "pending, in-progress or completed")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "category")
	return cmd
}

func tasksUpdateCmd() *cobra.Command {
	var title, description, priority, status, due, category string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, ok := app.stores.Tasks.Task(args[0])
			if !ok {
				return fmt.Errorf("task %s not found", args[0])
			}
			var patch core.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("desc") {
				patch.Description = &description
			}
			if flags.Changed("priority") {
				patch.Priority = core.Ptr(core.Priority(priority))
			}
			if flags.Changed("status") {
				patch.Status = core.Ptr(core.Status(status))
			}
			if flags.Changed("due") {
				d, err := core.ParseDate(due)
				if err != nil {
					return err
				}
				patch.DueDate = &d
			}
			if flags.Changed("category") {
				patch.Category = &category
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update")
			}
			if err := patch.Apply(current).Validate(); err != nil {
				return err
			}
			return app.stores.Tasks.UpdateTask(args[0], patch)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "title")
	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringVar(&priority, "priority", "", "high, medium or low")
	cmd.Flags().StringVar(&status, "status", "", "pending, in-progress or completed")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "category")
	return cmd
}

func tasksCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, ok := app.stores.Tasks.Task(args[0]); !ok {
				return fmt.Errorf("task %s not found", args[0])
			}
			return app.stores.Tasks.CompleteTask(args[0])
		},
	}
}

func tasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, ok := app.stores.Tasks.Task(args[0]); !ok {
				return fmt.Errorf("task %s not found", args[0])
			}
			return app.stores.Tasks.DeleteTask(args[0])
		},
	}
}

func tasksCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories used by tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, c := range tasks.Categories(app.stores.Tasks.Tasks()) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

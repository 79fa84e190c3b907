// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/cmd/taskdeck/cli"
	"github.com/taskdeck/taskdeck/lib/schema"
)

func taskCommand() *cli.Command {
	return &cli.Command{
		Name:    "task",
		Summary: "list and manage tasks",
		Subcommands: []*cli.Command{
			taskListCommand(),
			taskAddCommand(),
			taskEditCommand(),
			taskRemoveCommand(),
		},
	}
}

func taskListCommand() *cli.Command {
	var params struct {
		serverParams
		JSON bool `flag:"json" desc:"emit the task list as JSON"`
	}
	return &cli.Command{
		Name:    "list",
		Summary: "list all tasks",
		Usage:   "taskdeck task list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("task list", &params)
		},
		Run: func(args []string) error {
			app, err := newAppContext(params.serverParams)
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			tasks, err := app.Client.ListTasks(context.Background())
			if err != nil {
				return apiError("list tasks", err)
			}

			if params.JSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(tasks)
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tOWNER\tDESCRIPTION")
			for _, task := range tasks {
				fmt.Fprintf(tw, "%d\t%s\t#%d\t%s\n",
					task.ID, task.Title, task.UserID, summarize(task.Description))
			}
			return tw.Flush()
		},
	}
}

// summarize collapses a multi-line description to one bounded line
// for the table.
func summarize(description string) string {
	if index := strings.IndexByte(description, '\n'); index >= 0 {
		description = description[:index] + "…"
	}
	if len(description) > 60 {
		description = description[:60] + "…"
	}
	return description
}

func taskAddCommand() *cli.Command {
	var params struct {
		serverParams
		Description string `flag:"description,d" desc:"task description (markdown)"`
	}
	return &cli.Command{
		Name:    "add",
		Summary: "create a task",
		Usage:   "taskdeck task add <title> [flags]",
		Examples: []cli.Example{
			{Description: "create a task with a description", Command: `taskdeck task add "ship v2" -d "cut the release branch"`},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("task add", &params)
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Validation("task title required")
			}
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return cli.Validation("task title required")
			}

			app, err := newAppContext(params.serverParams)
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}
			if err := app.Client.CreateTask(context.Background(), title, params.Description); err != nil {
				return apiError("create task", err)
			}
			fmt.Printf("Created task %q\n", title)
			return nil
		},
	}
}

func taskEditCommand() *cli.Command {
	var params struct {
		serverParams
		Title       string `flag:"title,t" desc:"new title"`
		Description string `flag:"description,d" desc:"new description"`
	}
	return &cli.Command{
		Name:    "edit",
		Summary: "update a task's title or description",
		Usage:   "taskdeck task edit <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("task edit", &params)
		},
		Run: func(args []string) error {
			taskID, err := parseID(args, "task")
			if err != nil {
				return err
			}
			if params.Title == "" && params.Description == "" {
				return cli.Validation("nothing to change; pass --title or --description")
			}

			app, err := newAppContext(params.serverParams)
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			// The update endpoint replaces both fields, so fill the
			// unchanged one from the current task.
			current, err := findTask(app, taskID)
			if err != nil {
				return err
			}
			title := params.Title
			if title == "" {
				title = current.Title
			}
			description := params.Description
			if description == "" {
				description = current.Description
			}

			if err := app.Client.UpdateTask(context.Background(), taskID, title, description); err != nil {
				return apiError("update task", err)
			}
			fmt.Printf("Updated task %d\n", taskID)
			return nil
		},
	}
}

func taskRemoveCommand() *cli.Command {
	var params struct {
		serverParams
		Yes bool `flag:"yes,y" desc:"skip the confirmation prompt"`
	}
	return &cli.Command{
		Name:    "rm",
		Summary: "delete a task",
		Usage:   "taskdeck task rm <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("task rm", &params)
		},
		Run: func(args []string) error {
			taskID, err := parseID(args, "task")
			if err != nil {
				return err
			}
			app, err := newAppContext(params.serverParams)
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			if !params.Yes {
				confirmed, err := confirm("Delete this task?")
				if err != nil {
					return cli.Internal("%v", err)
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := app.Client.DeleteTask(context.Background(), taskID); err != nil {
				return apiError("delete task", err)
			}
			fmt.Printf("Deleted task %d\n", taskID)
			return nil
		},
	}
}

// parseID extracts the single positional numeric ID argument.
func parseID(args []string, kind string) (int64, error) {
	if len(args) != 1 {
		return 0, cli.Validation("exactly one %s ID required", kind)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, cli.Validation("invalid %s ID %q", kind, args[0])
	}
	return id, nil
}

// findTask fetches the task list and returns the task with the given
// ID. The server has no single-task endpoint.
func findTask(app *appContext, taskID int64) (schema.Task, error) {
	tasks, err := app.Client.ListTasks(context.Background())
	if err != nil {
		return schema.Task{}, apiError("list tasks", err)
	}
	for _, task := range tasks {
		if task.ID == taskID {
			return task, nil
		}
	}
	return schema.Task{}, cli.NotFound("task %d not found", taskID)
}

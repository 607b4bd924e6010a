package handlers

import (
	"context"

	"github.com/concave-dev/sakaton/cmd/sakatonctl/client"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/display"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/utils"
	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/concave-dev/sakaton/internal/validate"
	"github.com/spf13/cobra"
)

// HandleTaskList lists tasks with their current action.
func HandleTaskList(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()
	ctx := commandContext(cmd)

	token, err := loadToken(ctx)
	if err != nil {
		return describeError("load session", err)
	}

	tasks, err := client.CreateAPIClient().GetTasks(ctx, token)
	if err != nil {
		return describeError("fetch tasks", err)
	}
	display.DisplayTasks(tasks)
	return nil
}

// HandleTaskStart marks a task as started.
func HandleTaskStart(cmd *cobra.Command, args []string) error {
	return runTaskAction(cmd, args[0], "started", func(ctx context.Context, c *backend.Client, token, id string) error {
		return c.StartTask(ctx, token, id)
	})
}

// HandleTaskClaim claims the reward of a started task.
func HandleTaskClaim(cmd *cobra.Command, args []string) error {
	return runTaskAction(cmd, args[0], "claimed", func(ctx context.Context, c *backend.Client, token, id string) error {
		return c.ClaimTask(ctx, token, id)
	})
}

func runTaskAction(cmd *cobra.Command, taskID, action string,
	call func(ctx context.Context, c *backend.Client, token, id string) error) error {
	utils.SetupLogging()
	ctx := commandContext(cmd)

	if err := validate.IdentifierFormat("task id", taskID); err != nil {
		return err
	}

	token, err := loadToken(ctx)
	if err != nil {
		return describeError("load session", err)
	}

	if err := call(ctx, client.CreateAPIClient(), token, taskID); err != nil {
		return describeError("update task "+taskID, err)
	}
	display.DisplayTaskAction(action, taskID)
	return nil
}

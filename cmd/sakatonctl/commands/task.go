package commands

import (
	"fmt"

	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/spf13/cobra"
)

// Task command (parent command for task operations)
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "List tasks and claim their rewards",
	Long: `Commands for SakaTON tasks.

A task is started first (for example by opening its link), then claimed to
credit its reward.`,
}

// Task list command
var taskLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tasks with their status",
	Example: `  # List tasks
  sakatonctl task ls

  # Include task links
  sakatonctl --verbose task ls`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// Task start command
var taskStartCmd = &cobra.Command{
	Use:     "start <task-id>",
	Short:   "Mark a task as started",
	Example: `  sakatonctl task start join_channel`,
	Args:    exactlyOneTaskID,
	// RunE will be set by the main package that imports this
}

// Task claim command
var taskClaimCmd = &cobra.Command{
	Use:     "claim <task-id>",
	Short:   "Claim the reward of a started task",
	Example: `  sakatonctl task claim join_channel`,
	Args:    exactlyOneTaskID,
	// RunE will be set by the main package that imports this
}

func exactlyOneTaskID(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		cmd.Help()
		fmt.Println()
		logging.Error("Invalid arguments: expected 1 task ID, got %d", len(args))
		return fmt.Errorf("requires exactly 1 argument (task ID)")
	}
	return nil
}

func setupTaskCommands() {
	taskCmd.AddCommand(taskLsCmd)
	taskCmd.AddCommand(taskStartCmd)
	taskCmd.AddCommand(taskClaimCmd)
}

// GetTaskCommands returns the task command structures for handler assignment
func GetTaskCommands() (*cobra.Command, *cobra.Command, *cobra.Command) {
	return taskLsCmd, taskStartCmd, taskClaimCmd
}

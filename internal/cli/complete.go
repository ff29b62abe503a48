package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var completeUndo bool

var completeCmd = &cobra.Command{
	Use:   "complete <task title>",
	Short: "Mark a task in the plan file as complete",
	Long: `Mark the task with the given title as complete in the plan file. The title
must match the checkbox line in the plan exactly. Use --undo to mark a task
as incomplete again.

The command fails when the plan file does not exist, the title does not
match any task, or the task is already in the requested state.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Planner == nil {
			return fmt.Errorf("planner not initialized")
		}

		root, _ := cmd.Flags().GetString("root")
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		title := strings.Join(args, " ")
		result := Planner.CompleteTask(absRoot, title, !completeUndo)
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	completeCmd.Flags().String("root", ".", "Project root containing the plan file")
	completeCmd.Flags().BoolVar(&completeUndo, "undo", false, "Mark the task as incomplete instead")
	rootCmd.AddCommand(completeCmd)
}

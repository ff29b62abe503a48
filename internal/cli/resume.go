package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Suggest what to work on next",
	Long: `Read the plan file and suggest the next tasks to work on. Incomplete tasks
are ranked by priority tier inferred from their titles; the highest
non-empty tier wins.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Planner == nil {
			return fmt.Errorf("planner not initialized")
		}

		root, _ := cmd.Flags().GetString("root")
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		result := Planner.ResumeProject(absRoot)
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}

		fmt.Println(result.Message)
		fmt.Printf("  Status:   %s\n", result.Status)
		fmt.Printf("  Progress: %s\n", result.Progress)
		if len(result.NextTasks) > 0 {
			fmt.Println("  Next tasks:")
			for _, title := range result.NextTasks {
				fmt.Printf("    - %s\n", title)
			}
		}
		return nil
	},
}

func init() {
	resumeCmd.Flags().String("root", ".", "Project root containing the plan file")
	rootCmd.AddCommand(resumeCmd)
}

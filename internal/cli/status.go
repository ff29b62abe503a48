package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var statusYAML bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the project's task plan status",
	Long: `Parse the plan file and display every task with its completion state,
followed by a progress summary.

Use --yaml for machine-readable output.`,
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

		result := Planner.GetStatus(absRoot)
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}

		if statusYAML {
			data, err := yaml.Marshal(result.Status)
			if err != nil {
				return fmt.Errorf("marshalling status: %w", err)
			}
			fmt.Print(string(data))
			return nil
		}

		st := result.Status
		fmt.Printf("%s [%s]\n", st.ProjectName, st.Status)
		fmt.Printf("Last updated: %s\n\n", st.LastUpdated)
		for _, task := range st.Tasks {
			marker := " "
			if task.Completed {
				marker = "x"
			}
			fmt.Printf("  [%s] %s\n", marker, task.Title)
		}
		fmt.Printf("\n%d/%d tasks completed\n", st.CompletedTasks, st.TotalTasks)
		return nil
	},
}

func init() {
	statusCmd.Flags().String("root", ".", "Project root containing the plan file")
	statusCmd.Flags().BoolVar(&statusYAML, "yaml", false, "Output status as YAML")
	rootCmd.AddCommand(statusCmd)
}

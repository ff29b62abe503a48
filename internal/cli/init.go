package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a project plan from requirements text",
	Long: `Extract a task plan from free-form requirements text and write it as the
plan file in the project root (the given path, or the current directory).

Requirements are read from the file given with --requirements, or from
standard input when the flag is absent. The --name and --description flags
override whatever the requirements text declares. Any existing plan file is
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Planner == nil {
			return fmt.Errorf("planner not initialized")
		}

		projectRoot := "."
		if len(args) > 0 {
			projectRoot = args[0]
		}
		absRoot, err := filepath.Abs(projectRoot)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		reqFile, _ := cmd.Flags().GetString("requirements")
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")

		requirements, err := readRequirements(cmd.InOrStdin(), reqFile)
		if err != nil {
			return err
		}

		// Flag overrides are prepended as field lines; the extractor takes
		// the first match for each field.
		var overrides []string
		if name != "" {
			overrides = append(overrides, "Project Name: "+name)
		}
		if description != "" {
			overrides = append(overrides, "Project Description: "+description, "")
		}
		if len(overrides) > 0 {
			requirements = strings.Join(overrides, "\n") + "\n" + requirements
		}

		result := Planner.Initialize(absRoot, requirements)
		if !result.Success {
			return fmt.Errorf("initializing project: %s", result.Message)
		}

		fmt.Println(result.Message)
		fmt.Printf("  Project: %s\n", result.ProjectInfo.ProjectName)
		fmt.Printf("  Plan:    %s\n", result.TaskFilePath)
		return nil
	},
}

// readRequirements returns the requirements text from the given file, or from
// stdin when no file is specified.
func readRequirements(stdin io.Reader, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading requirements file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading requirements from stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	initCmd.Flags().String("name", "", "Project name (overrides the requirements text)")
	initCmd.Flags().String("description", "", "Project description (overrides the requirements text)")
	initCmd.Flags().String("requirements", "", "Path to a requirements file (defaults to stdin)")
	rootCmd.AddCommand(initCmd)
}

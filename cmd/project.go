package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/portfolio/internal/render"
	"github.com/nhle/portfolio/internal/ui/projectlist"
)

const detailWidth = 80

var errDeleteCancelled = errors.New("deletion cancelled")

// confirmPrompt asks a yes/no question on the terminal. Tests replace it.
var confirmPrompt = func(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().Title(title).Value(&ok).Run()
	return ok, err
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := st.ListProjects(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading projects: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.ProjectTable(projects))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show project details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := st.GetProject(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("project %s: %w", args[0], err)
		}
		fmt.Fprint(cmd.OutOrStdout(), render.Detail(*p, detailWidth))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			ok, err := confirmPrompt(fmt.Sprintf("Delete project %s? This cannot be undone.", id))
			if errors.Is(err, huh.ErrUserAborted) || (err == nil && !ok) {
				return errDeleteCancelled
			}
			if err != nil {
				return fmt.Errorf("confirming deletion: %w", err)
			}
		}

		if err := st.DeleteProject(cmd.Context(), id); err != nil {
			return fmt.Errorf("%s: %w", projectlist.MsgDeleteFailed, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), projectlist.MsgDeleted)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
}


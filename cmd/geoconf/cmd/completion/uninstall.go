package completion

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/internal/cmd/completion"
	"github.com/geoatlas/geoconf/internal/cmd/emoji"
)

// NewUninstallCommand creates the completion uninstall subcommand.
func NewUninstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove shell completions",
		Long: `Remove shell completions for geoconf.

By default, removes completions for all supported shells (bash, zsh, fish).
Use flags to remove from specific shells only.

Examples:
  geoconf completion uninstall           # Remove from all shells
  geoconf completion uninstall --bash    # Remove from bash only
  geoconf completion uninstall --zsh     # Remove from zsh only
  geoconf completion uninstall --fish    # Remove from fish only`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selected := selectedShells(cmd)

			fmt.Printf("Uninstalling shell completions...\n\n")

			var failures []string
			removed := 0

			for _, shell := range selected {
				if err := completion.Uninstall(shell); err != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", shell, err))
				} else {
					removed++
				}
				fmt.Println()
			}

			if len(failures) > 0 {
				fmt.Printf("%s Some removals failed:\n", emoji.Error)
				for _, failure := range failures {
					fmt.Printf("  - %s\n", failure)
				}
				if removed > 0 {
					fmt.Printf("\n%s Removed completions from %d shell(s)\n", emoji.Success, removed)
				}
				return fmt.Errorf("failed to remove some completions")
			}

			fmt.Printf("%s Removed completions from %d shell(s)\n", emoji.Success, removed)
			fmt.Printf("💡 Start a new shell session to ensure completions are fully removed.\n")
			return nil
		},
	}

	addShellFlags(cmd, "Remove")

	return cmd
}

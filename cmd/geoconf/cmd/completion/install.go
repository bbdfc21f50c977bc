package completion

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/internal/cmd/completion"
	"github.com/geoatlas/geoconf/internal/cmd/constants"
	"github.com/geoatlas/geoconf/internal/cmd/emoji"
)

// NewInstallCommand creates the completion install subcommand.
func NewInstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install shell completions",
		Long: `Install shell completions for geoconf.

By default, installs completions for all supported shells (bash, zsh, fish).
Use flags to install for specific shells only.

Examples:
  geoconf completion install           # Install for all shells
  geoconf completion install --bash    # Install for bash only
  geoconf completion install --zsh     # Install for zsh only
  geoconf completion install --fish    # Install for fish only`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selected := selectedShells(cmd)

			fmt.Printf("Installing shell completions...\n\n")

			var failures []string
			installed := 0

			for _, shell := range selected {
				if err := completion.Install(cmd.Root(), shell); err != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", shell, err))
				} else {
					installed++
				}
				fmt.Println()
			}

			if len(failures) > 0 {
				fmt.Printf("%s Some installations failed:\n", emoji.Error)
				for _, failure := range failures {
					fmt.Printf("  - %s\n", failure)
				}
				if installed > 0 {
					fmt.Printf("\n%s Installed completions for %d shell(s)\n", emoji.Success, installed)
				}
				return fmt.Errorf("failed to install some completions")
			}

			fmt.Printf("%s Installed completions for %d shell(s)\n", emoji.Success, installed)
			return nil
		},
	}

	addShellFlags(cmd, "Install")

	return cmd
}

// addShellFlags adds the per-shell selection flags shared by install and
// uninstall.
func addShellFlags(cmd *cobra.Command, verb string) {
	cmd.Flags().Bool("bash", false, verb+" bash completions only")
	cmd.Flags().Bool("zsh", false, verb+" zsh completions only")
	cmd.Flags().Bool("fish", false, verb+" fish completions only")
}

// selectedShells returns the shells named by flags, or every supported
// shell when none are set.
func selectedShells(cmd *cobra.Command) []string {
	bash, _ := cmd.Flags().GetBool("bash")
	zsh, _ := cmd.Flags().GetBool("zsh")
	fish, _ := cmd.Flags().GetBool("fish")

	if !bash && !zsh && !fish {
		return []string{constants.ShellBash, constants.ShellZsh, constants.ShellFish}
	}

	var shells []string
	if bash {
		shells = append(shells, constants.ShellBash)
	}
	if zsh {
		shells = append(shells, constants.ShellZsh)
	}
	if fish {
		shells = append(shells, constants.ShellFish)
	}
	return shells
}

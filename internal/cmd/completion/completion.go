// Package completion provides shared utilities for completion management.
package completion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/geoatlas/geoconf/internal/cmd/constants"
	"github.com/geoatlas/geoconf/internal/cmd/emoji"
	pkgconstants "github.com/geoatlas/geoconf/pkg/constants"
)

// target describes where a shell's completion file lives and how to
// generate its content.
type target struct {
	path     string
	generate func(root *cobra.Command, w io.Writer) error
}

// resolveTarget returns the completion target for a shell, or an error for
// shells without a file-based install.
func resolveTarget(shell string) (*target, error) {
	switch shell {
	case constants.ShellBash:
		path, err := BashPath()
		if err != nil {
			return nil, err
		}
		return &target{path: path, generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletion(w)
		}}, nil

	case constants.ShellZsh:
		path, err := ZshPath()
		if err != nil {
			return nil, err
		}
		return &target{path: path, generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		}}, nil

	case constants.ShellFish:
		path, err := FishPath()
		if err != nil {
			return nil, err
		}
		return &target{path: path, generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		}}, nil

	default:
		return nil, fmt.Errorf("unsupported shell: %s", shell)
	}
}

// Install writes the shell's completion file to the appropriate system
// location.
func Install(root *cobra.Command, shell string) error {
	fmt.Printf("Installing %s completions for geoconf...\n", shell)

	tgt, err := resolveTarget(shell)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(tgt.path), pkgconstants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create completion directory: %w", err)
	}

	file, err := os.Create(tgt.path) // #nosec G304 - paths come from the resolvers above
	if err != nil {
		return fmt.Errorf("failed to create completion file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file: %v\n", closeErr)
		}
	}()

	if err := tgt.generate(root, file); err != nil {
		return fmt.Errorf("failed to generate %s completion: %w", shell, err)
	}

	fmt.Printf(emoji.Success+" %s completions installed to: %s\n", shell, tgt.path)
	fmt.Printf("💡 Start a new shell session or reload your shell config to enable completions.\n")

	return nil
}

// Uninstall removes the completion file from the same location where
// Install puts it.
func Uninstall(shell string) error {
	fmt.Printf("Uninstalling %s completions for geoconf...\n", shell)

	tgt, err := resolveTarget(shell)
	if err != nil {
		return err
	}

	if info, err := os.Stat(tgt.path); err == nil && !info.IsDir() {
		if err := os.Remove(tgt.path); err != nil {
			// Permission issue most likely; leave manual instructions
			fmt.Printf(emoji.Error+" Could not remove: %s\n", tgt.path)
			fmt.Printf("💡 Try manually: sudo rm -f %s\n", tgt.path)
			return nil
		}
		fmt.Printf(emoji.Success+" Removed %s completions from: %s\n", shell, tgt.path)
	} else {
		fmt.Printf("No %s completions found at: %s\n", shell, tgt.path)
		if !removeFromCommonPaths(shell) {
			fmt.Printf("No completion files found in common locations.\n")
		}
	}

	fmt.Printf("💡 Start a new shell session to ensure completions are fully removed.\n")
	return nil
}

// brewPrefix returns the Homebrew prefix, or "" when Homebrew is not
// installed.
func brewPrefix() string {
	if prefix := os.Getenv("HOMEBREW_PREFIX"); prefix != "" {
		return prefix
	}
	for _, prefix := range []string{"/opt/homebrew", "/usr/local"} {
		if _, err := os.Stat(filepath.Join(prefix, "bin", "brew")); err == nil {
			return prefix
		}
	}
	return ""
}

// BashPath returns the appropriate bash completion path.
func BashPath() (string, error) {
	if prefix := brewPrefix(); prefix != "" {
		return filepath.Join(prefix, "etc", "bash_completion.d", "geoconf"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".bash_completion.d", "geoconf"), nil
}

// ZshPath returns the appropriate zsh completion path.
func ZshPath() (string, error) {
	if prefix := brewPrefix(); prefix != "" {
		return filepath.Join(prefix, "share", "zsh", "site-functions", "_geoconf"), nil
	}

	// User directory fallback is less reliable for zsh; it has to be on fpath
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".zsh", "completions", "_geoconf"), nil
}

// FishPath returns the appropriate fish completion path.
func FishPath() (string, error) {
	if prefix := brewPrefix(); prefix != "" {
		return filepath.Join(prefix, "share", "fish", "vendor_completions.d", "geoconf.fish"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "fish", "completions", "geoconf.fish"), nil
}

// removeFromCommonPaths removes completion files from common fallback
// locations, reporting whether anything was removed.
func removeFromCommonPaths(shell string) bool {
	homeDir, _ := os.UserHomeDir()

	var commonPaths []string
	switch shell {
	case constants.ShellBash:
		commonPaths = []string{
			"/etc/bash_completion.d/geoconf",
			"/usr/local/etc/bash_completion.d/geoconf",
			"/opt/homebrew/etc/bash_completion.d/geoconf",
			"/usr/share/bash-completion/completions/geoconf",
			filepath.Join(homeDir, ".bash_completion.d", "geoconf"),
		}
	case constants.ShellZsh:
		commonPaths = []string{
			"/usr/local/share/zsh/site-functions/_geoconf",
			"/opt/homebrew/share/zsh/site-functions/_geoconf",
			filepath.Join(homeDir, ".zsh", "completions", "_geoconf"),
		}
	case constants.ShellFish:
		commonPaths = []string{
			"/usr/share/fish/completions/geoconf.fish",
			"/usr/local/share/fish/completions/geoconf.fish",
			"/opt/homebrew/share/fish/vendor_completions.d/geoconf.fish",
			filepath.Join(homeDir, ".config", "fish", "completions", "geoconf.fish"),
		}
	}

	removed := false
	for _, path := range commonPaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			if err := os.Remove(path); err == nil {
				fmt.Printf(emoji.Success+" Removed: %s\n", path)
				removed = true
			} else {
				fmt.Printf(emoji.Error+" Could not remove: %s (try: sudo rm %s)\n", path, path)
			}
		}
	}

	return removed
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

const completionHelp = `Generate shell completion scripts for APP.

To load completions:

Bash:
  $ source <(APP completion bash)

  # To load completions for each session, execute once:
  $ APP completion bash > /etc/bash_completion.d/APP

Zsh:
  # If shell completion is not already enabled in your environment,
  # execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ APP completion zsh > "${fpath[1]}/_APP"

Fish:
  $ APP completion fish | source
  $ APP completion fish > ~/.config/fish/completions/APP.fish

PowerShell:
  PS> APP completion powershell | Out-String | Invoke-Expression
`

// completionCommand creates the completion command for generating shell completions.
// Scripts are written to the command's output so they can be redirected in tests.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  strings.ReplaceAll(completionHelp, "APP", appName),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

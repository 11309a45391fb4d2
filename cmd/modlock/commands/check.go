package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/modlock/internal/app"
	"go.trai.ch/modlock/internal/core/domain"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the lockfile satisfies the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifest, _ := cmd.Flags().GetString("manifest")
			lockfile, _ := cmd.Flags().GetString("lockfile")
			remote, _ := cmd.Flags().GetBool("remote")

			return c.app.Check(cmd.Context(), app.CheckOptions{
				ManifestPath: manifest,
				LockfilePath: lockfile,
				Remote:       remote,
			})
		},
	}
	cmd.Flags().String("manifest", domain.ManifestFileName, "Path to the manifest (.toml or .yaml)")
	cmd.Flags().String("lockfile", domain.LockfileFileName, "Path to the lockfile (.lock, .toml or .yaml)")
	cmd.Flags().Bool("remote", false, "Also confirm every locked version still exists in the registry")
	return cmd
}

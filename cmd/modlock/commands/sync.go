package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/modlock/internal/app"
	"go.trai.ch/modlock/internal/core/domain"
)

func defaultGameVersion() string {
	if v := os.Getenv(domain.GameVersionEnv); v != "" {
		return v
	}
	return domain.DefaultGameVersion
}

func (c *CLI) newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Resolve the manifest, download artifacts and write the lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gameVersion, _ := cmd.Flags().GetString("minecraft-version")
			outputDir, _ := cmd.Flags().GetString("output")
			manifest, _ := cmd.Flags().GetString("manifest")
			lockfile, _ := cmd.Flags().GetString("lockfile")
			serverOnly, _ := cmd.Flags().GetBool("server-only")
			noDownload, _ := cmd.Flags().GetBool("no-download")
			strict, _ := cmd.Flags().GetBool("strict")
			deny, _ := cmd.Flags().GetStringArray("deny")
			metricsFile, _ := cmd.Flags().GetString("metrics-file")

			return c.app.Sync(cmd.Context(), app.SyncOptions{
				ManifestPath: manifest,
				LockfilePath: lockfile,
				OutputDir:    outputDir,
				GameVersion:  gameVersion,
				Deny:         deny,
				MetricsFile:  metricsFile,
				ServerOnly:   serverOnly,
				NoDownload:   noDownload,
				Strict:       strict,
			})
		},
	}
	cmd.Flags().StringP("minecraft-version", "m", defaultGameVersion(),
		"Minecraft version to resolve for (env "+domain.GameVersionEnv+")")
	cmd.Flags().StringP("output", "o", ".", "Directory the per-loader artifact folders are created in")
	cmd.Flags().String("manifest", domain.ManifestFileName, "Path to the manifest (.toml or .yaml)")
	cmd.Flags().String("lockfile", domain.LockfileFileName, "Path to the lockfile (.lock, .toml or .yaml)")
	cmd.Flags().BoolP("server-only", "s", false, "Fail on projects that cannot run on a server")
	cmd.Flags().Bool("no-download", false, "Write the lockfile from registry metadata without downloading")
	cmd.Flags().Bool("strict", false, "Fail when a project has no compatible version")
	cmd.Flags().StringArray("deny", nil, "Additional project id or slug to never install (repeatable)")
	cmd.Flags().String("metrics-file", "", "Write Prometheus text-format metrics to this file after the run")
	return cmd
}

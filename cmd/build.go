package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/staticblog/internal/build"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the blog from the content directory",
	Long: `The build command parses every file in the content directory, sorts the
posts by date and renders index.html, posts/<slug>.html and about.html
into the output directory. The output directory and its posts/
subdirectory must already exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if appConfig.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		_, err := build.Run(cmd.Context(), appConfig, cmd.OutOrStdout(), logger)
		return err
	},
}

func init() {
	buildCmd.Flags().String("content", "", "directory of Markdown articles (default content/active_articles)")
	buildCmd.Flags().String("out", "", "output directory (default content/out)")
	buildCmd.Flags().String("templates", "", "directory of page templates (default builtin)")
	buildCmd.Flags().String("site", "", "YAML file of extra site parameters (default site.yaml)")
	buildCmd.Flags().String("code-style", "", "chroma style for code blocks (default monokai)")
	buildCmd.Flags().Bool("hard-wraps", false, "render newlines in paragraphs as <br>")
	rootCmd.AddCommand(buildCmd)
}

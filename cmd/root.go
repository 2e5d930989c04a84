package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Bitlatte/staticblog/internal/config"
)

var cfgFile string
var appConfig config.Config

// flagKeys maps command flags onto config keys.
var flagKeys = map[string]string{
	"content":    "contentDir",
	"out":        "outputDir",
	"templates":  "templatesDir",
	"site":       "siteFile",
	"code-style": "codeStyle",
	"hard-wraps": "hardWraps",
	"verbose":    "verbose",
}

var rootCmd = &cobra.Command{
	Use:   "staticblog",
	Short: "Builds a static HTML blog from a folder of Markdown articles",
	Long: `staticblog reads Markdown articles with a metadata header from
content/active_articles, and writes an index page, one page per post and
an about page to content/out.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every generated file")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	defaults := config.Default()
	v.SetDefault("contentDir", defaults.ContentDir)
	v.SetDefault("outputDir", defaults.OutputDir)
	v.SetDefault("templatesDir", "")
	v.SetDefault("siteFile", defaults.SiteFile)
	v.SetDefault("siteTitle", defaults.SiteTitle)
	v.SetDefault("baseURL", "")
	v.SetDefault("codeStyle", defaults.CodeStyle)
	v.SetDefault("hardWraps", false)
	v.SetDefault("verbose", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BLOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return nil
}

package config

// Config holds the build settings decoded by viper from defaults,
// config.yaml, BLOG_* environment variables and command flags.
type Config struct {
	ContentDir   string `mapstructure:"contentDir"`
	OutputDir    string `mapstructure:"outputDir"`
	TemplatesDir string `mapstructure:"templatesDir"`
	SiteFile     string `mapstructure:"siteFile"`
	SiteTitle    string `mapstructure:"siteTitle"`
	BaseURL      string `mapstructure:"baseURL"`
	CodeStyle    string `mapstructure:"codeStyle"`
	HardWraps    bool   `mapstructure:"hardWraps"`
	Verbose      bool   `mapstructure:"verbose"`
}

const (
	DefaultContentDir = "content/active_articles"
	DefaultOutputDir  = "content/out"
	DefaultSiteFile   = "site.yaml"
	DefaultSiteTitle  = "My Blog"
	DefaultCodeStyle  = "monokai"
)

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		ContentDir: DefaultContentDir,
		OutputDir:  DefaultOutputDir,
		SiteFile:   DefaultSiteFile,
		SiteTitle:  DefaultSiteTitle,
		CodeStyle:  DefaultCodeStyle,
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigName is the base name of the optional configuration file.
	ConfigName = ".zf-maintainer"
	// EnvPrefix prefixes environment overrides, e.g. ZF_MAINTAINER_MAINLINE_BRANCH.
	EnvPrefix = "ZF_MAINTAINER"
)

var branchNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)

type Config struct {
	Components           []string `mapstructure:"components"`
	VersionComponent     string   `mapstructure:"version_component"`
	MainlineBranch       string   `mapstructure:"mainline_branch"`
	IntegrationBranch    string   `mapstructure:"integration_branch"`
	BatchVersionFile     string   `mapstructure:"batch_version_file"`
	StageVersionFile     string   `mapstructure:"stage_version_file"`
	ReadmeTemplate       string   `mapstructure:"readme_template"`
	ReleaseTitle         string   `mapstructure:"release_title"`
	GithubOwner          string   `mapstructure:"github_owner"`
	GithubToken          string   `mapstructure:"github_token"`
	ReportDir            string   `mapstructure:"report_dir"`
	Organizations        []string `mapstructure:"organizations"`
	RepositoryBlocklist  []string `mapstructure:"repository_blocklist"`
	RepositoryAcceptlist []string `mapstructure:"repository_acceptlist"`
	RepositoryPrefix     string   `mapstructure:"repository_prefix"`
}

// DefaultComponents lists the components of the ZF2 LTS release.
var DefaultComponents = []string{
	"zend-authentication",
	"zend-barcode",
	"zend-cache",
	"zend-captcha",
	"zend-code",
	"zend-config",
	"zend-console",
	"zend-crypt",
	"zend-db",
	"zend-debug",
	"zend-di",
	"zend-dom",
	"zend-escaper",
	"zend-eventmanager",
	"zend-feed",
	"zend-file",
	"zend-filter",
	"zend-form",
	"zend-http",
	"zend-i18n",
	"zend-i18n-resources",
	"zend-inputfilter",
	"zend-json",
	"zend-ldap",
	"zend-loader",
	"zend-log",
	"zend-mail",
	"zend-math",
	"zend-memory",
	"zend-mime",
	"zend-modulemanager",
	"zend-mvc",
	"zend-navigation",
	"zend-paginator",
	"zend-permissions-acl",
	"zend-permissions-rbac",
	"zend-progressbar",
	"zend-serializer",
	"zend-server",
	"zend-servicemanager",
	"zend-session",
	"zend-soap",
	"zend-stdlib",
	"zend-tag",
	"zend-test",
	"zend-text",
	"zend-uri",
	"zend-validator",
	"zend-version",
	"zend-view",
	"zend-xmlrpc",
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Components:        append([]string(nil), DefaultComponents...),
		VersionComponent:  "zend-version",
		MainlineBranch:    "master",
		IntegrationBranch: "develop",
		BatchVersionFile:  "src/Version.php",
		StageVersionFile:  "library/Zend/Version/Version.php",
		ReleaseTitle:      "Zend Framework",
		GithubOwner:       "zendframework",
		ReportDir:         defaultReportDir(),
		Organizations:     []string{"zendframework", "zfcampus"},
		RepositoryBlocklist: []string{
			"zendframework/zendframework",
			"zendframework/zendframework.github.io",
			"zendframework/zend-coding-standard",
			"zendframework/zend-mvc-form",
			"zendframework/zend-mvc-plugins",
			"zendframework/zf2-documentation",
			"zendframework/zf2-tutorial",
			"zendframework/zf3-web",
			"zendframework/zfbot",
			"zendframework/zf-composer-repository",
			"zendframework/zf-mkdoc-theme",
			"zendframework/zf-web",
			"zfcampus/zendcon-design-patterns",
			"zfcampus/zf-angular",
			"zfcampus/zf-apigility-example",
			"zfcampus/zf-apigility-welcome",
		},
		RepositoryAcceptlist: []string{
			"zendframework/ZendService_Amazon",
			"zendframework/ZendService_Apple_Apns",
			"zendframework/ZendService_Google_Gcm",
			"zendframework/ZendService_ReCaptcha",
			"zendframework/ZendService_Twitter",
			"zendframework/ZendSkeletonApplication",
			"zendframework/ZendXml",
		},
		RepositoryPrefix: "z",
	}
}

func defaultReportDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".zf-maintainer", "reports")
	}
	return filepath.Join(dir, "zf-maintainer", "reports")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Components) == 0 {
		return fmt.Errorf("components cannot be empty")
	}
	seen := make(map[string]bool, len(c.Components))
	for _, component := range c.Components {
		if strings.TrimSpace(component) == "" {
			return fmt.Errorf("components cannot contain empty names")
		}
		if strings.ContainsAny(component, `/\`) || component == "." || component == ".." {
			return fmt.Errorf("invalid component name: %s", component)
		}
		if seen[component] {
			return fmt.Errorf("duplicate component: %s", component)
		}
		seen[component] = true
	}
	for key, branch := range map[string]string{
		"mainline_branch":    c.MainlineBranch,
		"integration_branch": c.IntegrationBranch,
	} {
		if err := ValidateBranchName(branch); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	for key, path := range map[string]string{
		"batch_version_file": c.BatchVersionFile,
		"stage_version_file": c.StageVersionFile,
	} {
		if path == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
		if filepath.IsAbs(path) || strings.Contains(path, "..") {
			return fmt.Errorf("%s must be a relative path inside the checkout: %s", key, path)
		}
	}
	if c.GithubOwner == "" {
		return fmt.Errorf("github_owner cannot be empty")
	}
	return nil
}

// ValidateBranchName validates a git branch name (exported for reuse)
func ValidateBranchName(branch string) error {
	if branch == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if strings.HasPrefix(branch, "/") || strings.HasSuffix(branch, "/") {
		return fmt.Errorf("branch name cannot start or end with slash: %s", branch)
	}
	if strings.Contains(branch, "..") {
		return fmt.Errorf("branch name cannot contain consecutive dots: %s", branch)
	}
	if strings.HasSuffix(branch, ".lock") {
		return fmt.Errorf("branch name cannot end with .lock: %s", branch)
	}
	if !branchNameRegex.MatchString(branch) {
		return fmt.Errorf("invalid branch name format: %s", branch)
	}
	return nil
}

// HasComponent reports whether name is a configured component.
func (c *Config) HasComponent(name string) bool {
	for _, component := range c.Components {
		if component == name {
			return true
		}
	}
	return false
}

// LoadConfig reads configuration from file (optional), environment and defaults.
// An empty configFile searches for .zf-maintainer.yaml in the working directory.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("github_token", "GITHUB_TOKEN", EnvPrefix+"_GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind github_token env: %w", err)
	}
	if err := v.BindEnv("github_owner", "GITHUB_OWNER", EnvPrefix+"_GITHUB_OWNER"); err != nil {
		return nil, fmt.Errorf("failed to bind github_owner env: %w", err)
	}
	defaults := DefaultConfig()
	v.SetDefault("components", defaults.Components)
	v.SetDefault("version_component", defaults.VersionComponent)
	v.SetDefault("mainline_branch", defaults.MainlineBranch)
	v.SetDefault("integration_branch", defaults.IntegrationBranch)
	v.SetDefault("batch_version_file", defaults.BatchVersionFile)
	v.SetDefault("stage_version_file", defaults.StageVersionFile)
	v.SetDefault("readme_template", defaults.ReadmeTemplate)
	v.SetDefault("release_title", defaults.ReleaseTitle)
	v.SetDefault("github_owner", defaults.GithubOwner)
	v.SetDefault("report_dir", defaults.ReportDir)
	v.SetDefault("organizations", defaults.Organizations)
	v.SetDefault("repository_blocklist", defaults.RepositoryBlocklist)
	v.SetDefault("repository_acceptlist", defaults.RepositoryAcceptlist)
	v.SetDefault("repository_prefix", defaults.RepositoryPrefix)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

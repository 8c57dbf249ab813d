package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/unknwon/com"
	"gopkg.in/yaml.v3"
)

const (
	defaultNginxRoot           = "/etc/nginx/conf.d"
	defaultApacheRoot          = "/etc/httpd/conf.d"
	defaultVhostFileExtensions = ".conf,.vhost"
	defaultDomainIgnoreMasks   = "^localhost$"
	defaultLogLevel            = "info"
	envPrefix                  = "sitediscovery"
	logFileName                = "site-discovery.log"
	configFileName             = "config"
)

var isDevMode = false
var Version string

type Config struct {
	LogFile             string
	LogLevel            string
	Debug               bool
	IsDevMode           bool
	Version             string
	ConfigFilePath      string
	NginxRoot           string
	ApacheRoot          string
	Recursive           bool
	VhostFileExtensions []string
	DomainIgnoreMasks   []string
	IncludeCustomPorts  bool
	IncludeWwwDomains   bool
	HaltOnParseErrors   bool
	UseDataProperty     bool
	HostnameFallback    bool
	rootPath            string
	v                   *viper.Viper
}

type options struct {
	NginxRoot           string   `mapstructure:"nginx_root"`
	ApacheRoot          string   `mapstructure:"apache_root"`
	Recursive           bool     `mapstructure:"recursive"`
	VhostFileExtensions []string `mapstructure:"vhost_file_extensions"`
	DomainIgnoreMasks   []string `mapstructure:"domain_ignore_masks"`
	IncludeCustomPorts  bool     `mapstructure:"include_custom_ports"`
	IncludeWww          bool     `mapstructure:"include_www"`
	HaltOnParseErrors   bool     `mapstructure:"halt_on_parse_errors"`
	UseDataProperty     bool     `mapstructure:"use_data_property"`
	HostnameFallback    bool     `mapstructure:"hostname_fallback"`
	LogLevel            string   `mapstructure:"log_level"`
	Debug               bool     `mapstructure:"debug"`
}

// GetConfig resolves settings from defaults, config.yaml inside the work directory,
// SITEDISCOVERY_* environment variables and the given flags, in that order of precedence.
// An empty workDir means the executable directory (the current directory in dev mode).
func GetConfig(workDir string, flags *pflag.FlagSet) (*Config, error) {
	rootPath, err := getRootPath(workDir)

	if err != nil {
		return nil, err
	}

	configFilePath := filepath.Join(rootPath, configFileName+".yaml")

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)

	v.SetDefault(NginxRootOpt, defaultNginxRoot)
	v.SetDefault(ApacheRootOpt, defaultApacheRoot)
	v.SetDefault(RecursiveOpt, false)
	v.SetDefault(VhostFileExtensionsOpt, defaultVhostFileExtensions)
	v.SetDefault(DomainIgnoreMasksOpt, defaultDomainIgnoreMasks)
	v.SetDefault(IncludeCustomPortsOpt, false)
	v.SetDefault(IncludeWwwOpt, false)
	v.SetDefault(HaltOnParseErrorsOpt, false)
	v.SetDefault(UseDataPropertyOpt, false)
	v.SetDefault(HostnameFallbackOpt, false)
	v.SetDefault(LogLevelOpt, defaultLogLevel)
	v.SetDefault(DebugOpt, false)

	if flags != nil {
		for option, flagName := range flagNames {
			flag := flags.Lookup(flagName)

			if flag == nil {
				continue
			}

			if err := v.BindPFlag(option, flag); err != nil {
				return nil, fmt.Errorf("could not bind flag %s: %w", flagName, err)
			}
		}
	}

	if com.IsFile(configFilePath) {
		configFile, err := os.Open(configFilePath)

		if err != nil {
			return nil, fmt.Errorf("could not open config file %s: %w", configFilePath, err)
		}

		defer configFile.Close()

		if err := v.ReadConfig(configFile); err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", configFilePath, err)
		}
	}

	if Version == "" {
		Version = "dev"
	}

	config := &Config{
		LogFile:        filepath.Join(rootPath, logFileName),
		ConfigFilePath: configFilePath,
		IsDevMode:      isDevMode,
		Version:        Version,
		rootPath:       rootPath,
		v:              v,
	}

	if err := setParams(config); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) RootPath() string {
	return c.rootPath
}

// ToMap returns every resolved setting keyed by option name.
func (c *Config) ToMap() map[string]any {
	settings := make(map[string]any)

	for option := range flagNames {
		settings[option] = c.v.Get(option)
	}

	return settings
}

func (c *Config) SetParam(name string, value any) error {
	return c.SetParams(map[string]any{name: value})
}

// SetParams merges params into config.yaml, keeping keys that are already there.
func (c *Config) SetParams(params map[string]any) error {
	data, err := os.ReadFile(c.ConfigFilePath)

	if err != nil {
		return err
	}

	confMap := make(map[string]any)
	err = yaml.Unmarshal(data, &confMap)

	if err != nil {
		return err
	}

	for name, value := range params {
		confMap[name] = value
	}

	data, err = yaml.Marshal(confMap)

	if err != nil {
		return err
	}

	return os.WriteFile(c.ConfigFilePath, data, 0644)
}

func CreateConfigFileIfNotExists(config *Config) error {
	if com.IsFile(config.ConfigFilePath) {
		return nil
	}

	file, err := os.Create(config.ConfigFilePath)

	if err != nil {
		return err
	}

	defer file.Close()

	return nil
}

func getRootPath(workDir string) (string, error) {
	if workDir != "" {
		if !com.IsDir(workDir) {
			return "", fmt.Errorf("work directory %s does not exist", workDir)
		}

		return filepath.Abs(workDir)
	}

	if isDevMode {
		wd, err := os.Getwd()

		if err != nil {
			return "", err
		}

		if filepath.Base(wd) == "cmd" {
			return filepath.Dir(wd), nil
		}

		return wd, nil
	}

	executable, err := os.Executable()

	if err != nil {
		return "", err
	}

	return filepath.Dir(executable), nil
}

func setParams(c *Config) error {
	var opts options

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToListHookFunc(),
		WeaklyTypedInput: true,
		Result:           &opts,
	})

	if err != nil {
		return err
	}

	if err := decoder.Decode(c.ToMap()); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.NginxRoot = strings.TrimSpace(opts.NginxRoot)
	c.ApacheRoot = strings.TrimSpace(opts.ApacheRoot)
	c.Recursive = opts.Recursive
	c.VhostFileExtensions = cleanList(opts.VhostFileExtensions)
	c.DomainIgnoreMasks = cleanList(opts.DomainIgnoreMasks)
	c.IncludeCustomPorts = opts.IncludeCustomPorts
	c.IncludeWwwDomains = opts.IncludeWww
	c.HaltOnParseErrors = opts.HaltOnParseErrors
	c.UseDataProperty = opts.UseDataProperty
	c.HostnameFallback = opts.HostnameFallback
	c.LogLevel = opts.LogLevel
	c.Debug = opts.Debug

	return nil
}

func cleanList(items []string) []string {
	cleaned := []string{}

	for _, item := range items {
		item = strings.TrimSpace(item)

		if item != "" {
			cleaned = append(cleaned, item)
		}
	}

	return cleaned
}

func stringToListHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
			return data, nil
		}

		return splitList(data.(string)), nil
	}
}

// splitList splits a comma separated value. Commas inside {} or [] and escaped
// commas are kept, so regex masks such as ^a{1,3}$ stay whole.
func splitList(value string) []string {
	var items []string
	depth := 0
	start := 0
	escaped := false

	for i, r := range value {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '{' || r == '[':
			depth++
		case (r == '}' || r == ']') && depth > 0:
			depth--
		case r == ',' && depth == 0:
			items = append(items, value[start:i])
			start = i + 1
		}
	}

	return append(items, value[start:])
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. YOMI_SERVER_PORT.
const EnvPrefix = "YOMI"

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v *viper.Viper

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager loads .env (if present), then the config file, then applies
// environment overrides on top of the defaults.
func NewManager(cfgFile string) (*Manager, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	cm := &Manager{
		v:         viper.New(),
		callbacks: make([]func(*Config), 0),
	}
	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// LoadDotEnv loads KEY=VALUE files into the process environment. Missing
// files are skipped and variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func (cm *Manager) initViper(cfgFile string) error {
	v := cm.v
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.yomi")
	}

	// Try to read config file (not required)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// setDefaults registers every leaf key so env overrides reach nested values.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.max_upload_mb", d.Server.MaxUploadMB)

	v.SetDefault("engine.segmenter", d.Engine.Segmenter)
	v.SetDefault("engine.converter", d.Engine.Converter)
	v.SetDefault("engine.dictionary", d.Engine.Dictionary)
	v.SetDefault("engine.user_dict", d.Engine.UserDict)
	v.SetDefault("engine.workers", d.Engine.Workers)
	v.SetDefault("engine.kanjidic", d.Engine.Kanjidic)

	v.SetDefault("ocr.provider", d.OCR.Provider)
	v.SetDefault("ocr.azure.endpoint", d.OCR.Azure.Endpoint)
	v.SetDefault("ocr.azure.key", d.OCR.Azure.Key)
	v.SetDefault("ocr.azure.poll_interval", d.OCR.Azure.PollInterval)
	v.SetDefault("ocr.azure.max_polls", d.OCR.Azure.MaxPolls)
	v.SetDefault("ocr.tesseract.languages", d.OCR.Tesseract.Languages)
	v.SetDefault("ocr.tesseract.vertical", d.OCR.Tesseract.Vertical)

	v.SetDefault("translate.enabled", d.Translate.Enabled)
	v.SetDefault("translate.source", d.Translate.Source)
	v.SetDefault("translate.target", d.Translate.Target)
	v.SetDefault("translate.timeout", d.Translate.Timeout)
	v.SetDefault("translate.retries", d.Translate.Retries)
	v.SetDefault("translate.mymemory_url", d.Translate.MyMemoryURL)
	v.SetDefault("translate.libretranslate_urls", d.Translate.LibreTranslateURLs)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("debug.dump_dir", d.Debug.DumpDir)
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	for key, val := range map[string]string{
		"engine.segmenter": c.Engine.Segmenter,
		"engine.converter": c.Engine.Converter,
	} {
		if val != "kagome" && val != "none" {
			return fmt.Errorf("%s: unknown backend %q", key, val)
		}
	}
	switch c.OCR.Provider {
	case "azure", "tesseract", "none":
	default:
		return fmt.Errorf("ocr.provider: unknown provider %q", c.OCR.Provider)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	return nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFile returns the path of the file in use, or "".
func (cm *Manager) ConfigFile() string {
	return cm.v.ConfigFileUsed()
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration. Invalid edits are
// ignored and the previous configuration stays active.
func (cm *Manager) WatchConfig() {
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cm.reload()
	})
	cm.v.WatchConfig()
}

func (cm *Manager) reload() {
	cfg, err := cm.load()
	if err != nil {
		return
	}

	cm.mu.Lock()
	cm.config = cfg
	callbacks := make([]func(*Config), len(cm.callbacks))
	copy(callbacks, cm.callbacks)
	cm.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envRef.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# yomi configuration
# Secrets use ${ENV_VAR} syntax; they may also live in a .env file:
#   AZURE_OCR_ENDPOINT=https://<resource>.cognitiveservices.azure.com
#   AZURE_OCR_KEY=xxx
# Any key can be overridden with YOMI_<SECTION>_<KEY>, e.g. YOMI_SERVER_PORT=9090

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}

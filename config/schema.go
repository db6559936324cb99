package config

import "time"

// Config holds yomi configuration.
// Stored at: ./config.yaml or ~/.yomi/config.yaml
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Engine    EngineConfig    `mapstructure:"engine" yaml:"engine"`
	OCR       OCRConfig       `mapstructure:"ocr" yaml:"ocr"`
	Translate TranslateConfig `mapstructure:"translate" yaml:"translate"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Debug     DebugConfig     `mapstructure:"debug" yaml:"debug"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Host        string `mapstructure:"host" yaml:"host"`
	Port        string `mapstructure:"port" yaml:"port"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// EngineConfig selects the annotation capabilities.
type EngineConfig struct {
	Segmenter  string `mapstructure:"segmenter" yaml:"segmenter"`   // "kagome" or "none"
	Converter  string `mapstructure:"converter" yaml:"converter"`   // "kagome" or "none"
	Dictionary string `mapstructure:"dictionary" yaml:"dictionary"` // "ipa" or "uni"
	UserDict   string `mapstructure:"user_dict" yaml:"user_dict"`
	Workers    int    `mapstructure:"workers" yaml:"workers"`
	// Kanjidic is an optional Kanjidic2 XML path used for per-kanji ruby.
	Kanjidic string `mapstructure:"kanjidic" yaml:"kanjidic"`
}

// OCRConfig selects and configures the OCR provider.
type OCRConfig struct {
	Provider  string          `mapstructure:"provider" yaml:"provider"` // "azure", "tesseract" or "none"
	Azure     AzureConfig     `mapstructure:"azure" yaml:"azure"`
	Tesseract TesseractConfig `mapstructure:"tesseract" yaml:"tesseract"`
}

// AzureConfig configures the Azure Read API client.
type AzureConfig struct {
	Endpoint     string        `mapstructure:"endpoint" yaml:"endpoint"` // supports ${ENV_VAR}
	Key          string        `mapstructure:"key" yaml:"key"`           // supports ${ENV_VAR}
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	MaxPolls     int           `mapstructure:"max_polls" yaml:"max_polls"`
}

// TesseractConfig configures local Tesseract OCR.
type TesseractConfig struct {
	Languages []string `mapstructure:"languages" yaml:"languages"`
	Vertical  bool     `mapstructure:"vertical" yaml:"vertical"`
}

// TranslateConfig configures the translation chain.
type TranslateConfig struct {
	Enabled            bool          `mapstructure:"enabled" yaml:"enabled"`
	Source             string        `mapstructure:"source" yaml:"source"`
	Target             string        `mapstructure:"target" yaml:"target"`
	Timeout            time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Retries            int           `mapstructure:"retries" yaml:"retries"`
	MyMemoryURL        string        `mapstructure:"mymemory_url" yaml:"mymemory_url"`
	LibreTranslateURLs []string      `mapstructure:"libretranslate_urls" yaml:"libretranslate_urls"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// DebugConfig configures debug output.
type DebugConfig struct {
	// DumpDir receives one JSON file per processed document when set.
	DumpDir string `mapstructure:"dump_dir" yaml:"dump_dir"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        "8080",
			MaxUploadMB: 16,
		},
		Engine: EngineConfig{
			Segmenter:  "kagome",
			Converter:  "kagome",
			Dictionary: "ipa",
			Workers:    4,
		},
		OCR: OCRConfig{
			Provider: "azure",
			Azure: AzureConfig{
				Endpoint:     "${AZURE_OCR_ENDPOINT}",
				Key:          "${AZURE_OCR_KEY}",
				PollInterval: time.Second,
				MaxPolls:     60,
			},
			Tesseract: TesseractConfig{
				Languages: []string{"jpn"},
			},
		},
		Translate: TranslateConfig{
			Enabled:     true,
			Source:      "ja",
			Target:      "en",
			Timeout:     10 * time.Second,
			Retries:     2,
			MyMemoryURL: "https://api.mymemory.translated.net/get",
			LibreTranslateURLs: []string{
				"https://libretranslate.de/api/v1/translate",
				"https://translate.astian.org/translate",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}

// AzureCredentials returns the Azure endpoint and key with ${ENV_VAR}
// references resolved.
func (c *Config) AzureCredentials() (endpoint, key string) {
	return ResolveEnvVars(c.OCR.Azure.Endpoint), ResolveEnvVars(c.OCR.Azure.Key)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageCloudinary = "cloudinary"
	StorageMinio      = "minio"
	StorageS3         = "s3"
)

// Inference providers
const (
	ProviderOpenAI    = "openai"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		MaxUploadMB  int64         `yaml:"maxUploadMB"`
		ReadTimeout  time.Duration `yaml:"readTimeout"`
		WriteTimeout time.Duration `yaml:"writeTimeout"`
		IdleTimeout  time.Duration `yaml:"idleTimeout"`
		APIKeys      []string      `yaml:"apiKeys"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Storage struct {
		Backend    string `yaml:"backend"`
		Prefix     string `yaml:"prefix"`
		Cloudinary struct {
			CloudName string `yaml:"cloudName"`
			APIKey    string `yaml:"apiKey"`
			APISecret string `yaml:"apiSecret"`
			Folder    string `yaml:"folder"`
		} `yaml:"cloudinary"`
		Minio struct {
			Endpoint      string `yaml:"endpoint"`
			AccessKey     string `yaml:"accessKey"`
			SecretKey     string `yaml:"secretKey"`
			BucketName    string `yaml:"bucketName"`
			Region        string `yaml:"region"`
			UseSSL        bool   `yaml:"useSSL"`
			PublicBaseURL string `yaml:"publicBaseURL"`
		} `yaml:"minio"`
		S3 struct {
			Endpoint        string `yaml:"endpoint"`
			Region          string `yaml:"region"`
			Bucket          string `yaml:"bucket"`
			AccessKeyID     string `yaml:"accessKeyID"`
			SecretAccessKey string `yaml:"secretAccessKey"`
			PathStyle       bool   `yaml:"pathStyle"`
			PublicBaseURL   string `yaml:"publicBaseURL"`
		} `yaml:"s3"`
	} `yaml:"storage"`

	Inference Inference `yaml:"inference"`

	Analysis struct {
		Concurrency    int    `yaml:"concurrency"`
		DefaultPersona string `yaml:"defaultPersona"`
	} `yaml:"analysis"`
}

// Inference holds provider selection plus the canonical generation settings.
type Inference struct {
	Provider    string `yaml:"provider"`
	APIKey      string `yaml:"apiKey"`
	BaseURL     string `yaml:"baseURL"`
	VisionModel string `yaml:"visionModel"`
	TextModel   string `yaml:"textModel"`
	RefineModel string `yaml:"refineModel"`

	// nil means unset; 0 is a valid temperature
	Temperature       *float64 `yaml:"temperature"`
	MaxTokens         int      `yaml:"maxTokens"`
	RefineTemperature *float64 `yaml:"refineTemperature"`
	RefineMaxTokens   int      `yaml:"refineMaxTokens"`
}

const (
	defaultTemperature       = 0.7
	defaultRefineTemperature = 0.85
)

// AnalysisTemperature is the configured analysis temperature or its default.
func (in Inference) AnalysisTemperature() float64 {
	if in.Temperature == nil {
		return defaultTemperature
	}
	return *in.Temperature
}

// RefinementTemperature is the configured refinement temperature or its default.
func (in Inference) RefinementTemperature() float64 {
	if in.RefineTemperature == nil {
		return defaultRefineTemperature
	}
	return *in.RefineTemperature
}

// Load baca file config (optional), lalu override dari environment.
// A missing file is not an error: the service is usually configured through env.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}
	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				*dst = strings.TrimSpace(v)
				return
			}
		}
	}
	boolean := func(dst *bool, key string) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*dst = b
			}
		}
	}
	float := func(dst **float64, key string) {
		if v, ok := lookup(key); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				*dst = &f
			}
		}
	}
	integer := func(dst *int, key string) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}

	integer(&c.Server.Port, "PORT")
	if v, ok := lookup("API_KEYS"); ok && strings.TrimSpace(v) != "" {
		c.Server.APIKeys = splitList(v)
	}
	str(&c.Log.Level, "LOG_LEVEL")
	str(&c.Log.Format, "LOG_FORMAT")

	str(&c.Storage.Backend, "STORAGE_BACKEND")
	str(&c.Storage.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
	str(&c.Storage.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
	str(&c.Storage.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")
	str(&c.Storage.Cloudinary.Folder, "CLOUDINARY_FOLDER")
	str(&c.Storage.Minio.Endpoint, "MINIO_ENDPOINT")
	str(&c.Storage.Minio.AccessKey, "MINIO_ACCESS_KEY")
	str(&c.Storage.Minio.SecretKey, "MINIO_SECRET_KEY")
	str(&c.Storage.Minio.BucketName, "MINIO_BUCKET")
	str(&c.Storage.Minio.Region, "MINIO_REGION")
	boolean(&c.Storage.Minio.UseSSL, "MINIO_USE_SSL")
	str(&c.Storage.Minio.PublicBaseURL, "MINIO_PUBLIC_BASE_URL")
	str(&c.Storage.S3.Endpoint, "S3_ENDPOINT")
	str(&c.Storage.S3.Region, "S3_REGION")
	str(&c.Storage.S3.Bucket, "S3_BUCKET")
	str(&c.Storage.S3.AccessKeyID, "S3_ACCESS_KEY_ID")
	str(&c.Storage.S3.SecretAccessKey, "S3_SECRET_ACCESS_KEY")
	boolean(&c.Storage.S3.PathStyle, "S3_PATH_STYLE")
	str(&c.Storage.S3.PublicBaseURL, "S3_PUBLIC_BASE_URL")

	str(&c.Inference.Provider, "INFERENCE_PROVIDER")
	str(&c.Inference.VisionModel, "INFERENCE_VISION_MODEL")
	str(&c.Inference.TextModel, "INFERENCE_TEXT_MODEL")
	str(&c.Inference.RefineModel, "INFERENCE_REFINE_MODEL")
	float(&c.Inference.Temperature, "INFERENCE_TEMPERATURE")
	float(&c.Inference.RefineTemperature, "INFERENCE_REFINE_TEMPERATURE")
	// the key and URL variables depend on the provider; INFERENCE_* always wins
	switch normalizeProvider(c.Inference.Provider) {
	case ProviderOllama:
		str(&c.Inference.BaseURL, "INFERENCE_BASE_URL", "OLLAMA_URL")
		str(&c.Inference.APIKey, "INFERENCE_API_KEY")
	case ProviderOpenAI:
		str(&c.Inference.BaseURL, "INFERENCE_BASE_URL")
		str(&c.Inference.APIKey, "INFERENCE_API_KEY", "OPENAI_API_KEY")
	case ProviderAnthropic:
		str(&c.Inference.BaseURL, "INFERENCE_BASE_URL")
		str(&c.Inference.APIKey, "INFERENCE_API_KEY", "ANTHROPIC_API_KEY")
	case ProviderGemini:
		str(&c.Inference.BaseURL, "INFERENCE_BASE_URL")
		str(&c.Inference.APIKey, "INFERENCE_API_KEY", "GEMINI_API_KEY")
	default:
		str(&c.Inference.BaseURL, "INFERENCE_BASE_URL")
		str(&c.Inference.APIKey, "INFERENCE_API_KEY", "GROQ_API_KEY")
	}

	integer(&c.Analysis.Concurrency, "ANALYSIS_CONCURRENCY")
	str(&c.Analysis.DefaultPersona, "ADMIN_PERSONA")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.MaxUploadMB <= 0 {
		c.Server.MaxUploadMB = 32
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 60 * time.Second
	}
	// inference calls are synchronous and slow; keep the write timeout generous
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 5 * time.Minute
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageCloudinary
	}
	if c.Storage.Prefix == "" {
		c.Storage.Prefix = "uploads"
	}
	if c.Storage.Minio.BucketName == "" {
		c.Storage.Minio.BucketName = "feedy"
	}
	if c.Storage.S3.Region == "" {
		c.Storage.S3.Region = "us-east-1"
	}

	c.Inference.Provider = normalizeProvider(c.Inference.Provider)
	c.Inference.applyDefaults()

	if c.Analysis.Concurrency <= 0 {
		c.Analysis.Concurrency = 1
	}
}

func (in *Inference) applyDefaults() {
	switch in.Provider {
	case ProviderGroq:
		if in.BaseURL == "" {
			in.BaseURL = groqBaseURL
		}
		defaultString(&in.VisionModel, "meta-llama/llama-4-scout-17b-16e-instruct")
		defaultString(&in.TextModel, "llama-3.3-70b-versatile")
		defaultString(&in.RefineModel, "meta-llama/llama-4-scout-17b-16e-instruct")
	case ProviderOpenAI:
		defaultString(&in.VisionModel, "gpt-4o-mini")
		defaultString(&in.TextModel, "gpt-4o-mini")
	case ProviderAnthropic:
		defaultString(&in.VisionModel, "claude-haiku-4-5-20251001")
		defaultString(&in.TextModel, "claude-haiku-4-5-20251001")
	case ProviderGemini:
		defaultString(&in.VisionModel, "gemini-2.0-flash")
		defaultString(&in.TextModel, "gemini-2.0-flash")
	case ProviderOllama:
		if in.BaseURL == "" {
			in.BaseURL = "http://localhost:11434"
		}
		defaultString(&in.VisionModel, "llava")
		defaultString(&in.TextModel, "llama3.2")
	}
	defaultString(&in.RefineModel, in.TextModel)

	if in.MaxTokens <= 0 {
		in.MaxTokens = 1024
	}
	if in.RefineMaxTokens <= 0 {
		in.RefineMaxTokens = 1024
	}
}

// Validate checks that the selected backends have their credentials.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case StorageCloudinary:
		cl := c.Storage.Cloudinary
		if cl.CloudName == "" || cl.APIKey == "" || cl.APISecret == "" {
			errs = append(errs, errors.New("cloudinary: cloud name, api key and api secret are required"))
		}
	case StorageMinio:
		if c.Storage.Minio.Endpoint == "" {
			errs = append(errs, errors.New("minio: endpoint is required"))
		}
	case StorageS3:
		o := c.Storage.S3
		if o.Bucket == "" || o.AccessKeyID == "" || o.SecretAccessKey == "" {
			errs = append(errs, errors.New("s3: bucket, access key id and secret access key are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}

	switch c.Inference.Provider {
	case ProviderGroq, ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		if c.Inference.APIKey == "" {
			errs = append(errs, fmt.Errorf("%s: api key is required", c.Inference.Provider))
		}
	case ProviderOllama:
	default:
		errs = append(errs, fmt.Errorf("unknown inference provider %q", c.Inference.Provider))
	}
	return errors.Join(errs...)
}

func normalizeProvider(raw string) string {
	p := strings.ToLower(strings.TrimSpace(raw))
	if p == "" {
		return ProviderGroq
	}
	return p
}

func defaultString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

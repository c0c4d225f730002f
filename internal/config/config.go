package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port" validate:"required,min=1,max=65535"`
	} `yaml:"server"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`

	RateLimit struct {
		Capacity   int `yaml:"capacity" validate:"min=0"`
		RefillRate int `yaml:"refillRate" validate:"min=0"`
	} `yaml:"rateLimit"`

	Logging struct {
		Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	} `yaml:"logging"`

	AzureOpenAI struct {
		Key        string `yaml:"key"`
		Endpoint   string `yaml:"endpoint"`
		Deployment string `yaml:"deployment"`
	} `yaml:"azureOpenAI"`

	OpenAI struct {
		Key   string `yaml:"key"`
		Model string `yaml:"model"`
	} `yaml:"openAI"`

	Anthropic struct {
		Key   string `yaml:"key"`
		Model string `yaml:"model"`
	} `yaml:"anthropic"`

	Vision struct {
		Endpoint string `yaml:"endpoint"`
		Key      string `yaml:"key"`
	} `yaml:"vision"`

	Translator struct {
		Key    string `yaml:"key"`
		Region string `yaml:"region"`
	} `yaml:"translator"`

	Speech struct {
		Key    string `yaml:"key"`
		Region string `yaml:"region"`
	} `yaml:"speech"`
}

// Load reads the yaml config file, applies environment-variable overrides
// for credentials, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv lets credentials come from the environment, taking precedence
// over the file so deployments never need secrets on disk.
func (c *Config) applyEnv() {
	override(&c.AzureOpenAI.Key, "AZURE_OPENAI_KEY")
	override(&c.AzureOpenAI.Endpoint, "AZURE_OPENAI_ENDPOINT")
	override(&c.AzureOpenAI.Deployment, "AZURE_OPENAI_DEPLOYMENT")
	override(&c.OpenAI.Key, "OPENAI_API_KEY")
	override(&c.Anthropic.Key, "ANTHROPIC_API_KEY")
	override(&c.Vision.Endpoint, "AZURE_CV_ENDPOINT")
	override(&c.Vision.Key, "AZURE_CV_KEY")
	override(&c.Translator.Key, "AZURE_TRANSLATOR_KEY")
	override(&c.Translator.Region, "AZURE_TRANSLATOR_REGION")
	override(&c.Speech.Key, "SPEECH_KEY")
	override(&c.Speech.Region, "SPEECH_REGION")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5001
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-3.5-turbo-16k"
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = "claude-3-5-haiku-latest"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func override(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

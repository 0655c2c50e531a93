package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	LLM      LLM
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// LLM holds the platform-level default provider used when a user has not
// saved their own settings, plus the platform API keys per provider.
type LLM struct {
	DefaultProvider string
	DefaultModel    string
	OpenAIApiKey    string
	GroqApiKey      string
	GeminiApiKey    string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("DEFAULT_LLM_PROVIDER", "openai")
	viper.SetDefault("DEFAULT_LLM_MODEL", "gpt-4o-mini")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.LLM.DefaultProvider = viper.GetString("DEFAULT_LLM_PROVIDER")
	config.LLM.DefaultModel = viper.GetString("DEFAULT_LLM_MODEL")
	config.LLM.OpenAIApiKey = viper.GetString("OPENAI_API_KEY")
	config.LLM.GroqApiKey = viper.GetString("GROQ_API_KEY")
	config.LLM.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().Str("port", config.Server.Port).Str("defaultProvider", config.LLM.DefaultProvider).Msg("Config loaded")
	return &config, nil
}

// KeyFor returns the platform API key for the named provider, empty when
// none is configured.
func (l LLM) KeyFor(provider string) string {
	switch provider {
	case "openai":
		return l.OpenAIApiKey
	case "groq":
		return l.GroqApiKey
	case "gemini":
		return l.GeminiApiKey
	}
	return ""
}

package config

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"reqdojo/internal/completion"
)

type Config struct {
	Port       string
	Env        string
	Completion completion.Config
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:       *port,
		Env:        env,
		Completion: loadCompletionConfig(),
	}, nil
}

func loadCompletionConfig() completion.Config {
	provider := strings.TrimSpace(os.Getenv("COMPLETION_PROVIDER"))
	apiKey := strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY"))
	if provider == completion.ProviderGemini {
		apiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	return completion.Config{
		Provider: provider,
		APIKey:   apiKey,
		BaseURL:  strings.TrimSpace(os.Getenv("COMPLETION_BASE_URL")),
		Model:    strings.TrimSpace(os.Getenv("COMPLETION_MODEL")),
	}
}

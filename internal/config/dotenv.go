package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	PublicURL           string
	QuestionTimeSeconds int
	QuestionsPerGame    int
	MinPlayers          int
}

func Default() Config {
	return Config{
		PublicURL:           "http://localhost:8080",
		QuestionTimeSeconds: 30,
		QuestionsPerGame:    10,
		MinPlayers:          2,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PUBLIC_URL"); raw != "" {
		cfg.PublicURL = raw
	}
	if raw := os.Getenv("QUESTION_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.QuestionTimeSeconds = value
		}
	}
	if raw := os.Getenv("QUESTION_COUNT"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.QuestionsPerGame = value
		}
	}
	if raw := os.Getenv("MIN_PLAYERS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 1 {
			cfg.MinPlayers = value
		}
	}
	return cfg
}

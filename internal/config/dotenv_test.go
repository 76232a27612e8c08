package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PUBLIC_URL", "QUESTION_SECONDS", "QUESTION_COUNT", "MIN_PLAYERS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	cfg := Load()
	if cfg != Default() {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PUBLIC_URL", "https://game.example.com")
	t.Setenv("QUESTION_SECONDS", "45")
	t.Setenv("QUESTION_COUNT", "15")
	t.Setenv("MIN_PLAYERS", "3")

	cfg := Load()
	if cfg.PublicURL != "https://game.example.com" {
		t.Fatalf("public url not applied: %q", cfg.PublicURL)
	}
	if cfg.QuestionTimeSeconds != 45 || cfg.QuestionsPerGame != 15 || cfg.MinPlayers != 3 {
		t.Fatalf("numeric overrides not applied: %#v", cfg)
	}
}

func TestLoadRejectsNonsenseValues(t *testing.T) {
	t.Setenv("QUESTION_SECONDS", "banana")
	t.Setenv("QUESTION_COUNT", "-4")
	t.Setenv("MIN_PLAYERS", "1")

	cfg := Load()
	defaults := Default()
	if cfg.QuestionTimeSeconds != defaults.QuestionTimeSeconds {
		t.Fatalf("non-numeric seconds accepted: %d", cfg.QuestionTimeSeconds)
	}
	if cfg.QuestionsPerGame != defaults.QuestionsPerGame {
		t.Fatalf("negative count accepted: %d", cfg.QuestionsPerGame)
	}
	if cfg.MinPlayers != defaults.MinPlayers {
		t.Fatalf("single-player minimum accepted: %d", cfg.MinPlayers)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("QUESTION_COUNT=20\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("QUESTION_COUNT", "")
	os.Unsetenv("QUESTION_COUNT")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("QUESTION_COUNT"); got != "20" {
		t.Fatalf("expected variable from file, got %q", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file should be a no-op, got %v", err)
	}
}

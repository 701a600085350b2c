package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Clear environment variables that might interfere.
	os.Clearenv()

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Check a few default values.
	if config.ServerPort != "8080" {
		t.Errorf("expected ServerPort to be '8080', got %s", config.ServerPort)
	}
	if config.QueueCapacity != 100 {
		t.Errorf("expected QueueCapacity to be 100, got %d", config.QueueCapacity)
	}
	if config.MinCriteriaCount != 5 {
		t.Errorf("expected MinCriteriaCount to be 5, got %d", config.MinCriteriaCount)
	}
	if config.SinkURL != "" {
		t.Errorf("expected SinkURL to default to empty (sink disabled), got %s", config.SinkURL)
	}
	if config.SinkIndex != "edition_analyses" {
		t.Errorf("expected SinkIndex to be 'edition_analyses', got %s", config.SinkIndex)
	}
	if config.ConclusionModel != "gpt-4o-mini" {
		t.Errorf("expected ConclusionModel to be 'gpt-4o-mini', got %s", config.ConclusionModel)
	}
	if config.LogLevel != "info" {
		t.Errorf("expected LogLevel to be 'info', got %s", config.LogLevel)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	// Set environment variables.
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("MAX_PAGES", "10")
	os.Setenv("MIN_CRITERIA_COUNT", "3")
	os.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if config.ServerPort != "9090" {
		t.Errorf("expected ServerPort to be '9090', got %s", config.ServerPort)
	}
	if config.MaxPages != 10 {
		t.Errorf("expected MaxPages to be 10, got %d", config.MaxPages)
	}
	if config.MinCriteriaCount != 3 {
		t.Errorf("expected MinCriteriaCount to be 3, got %d", config.MinCriteriaCount)
	}
	if config.LogLevel != "debug" {
		t.Errorf("expected LogLevel to be 'debug', got %s", config.LogLevel)
	}

	// Clean up environment variables after test.
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("MAX_PAGES")
	os.Unsetenv("MIN_CRITERIA_COUNT")
	os.Unsetenv("LOG_LEVEL")
}

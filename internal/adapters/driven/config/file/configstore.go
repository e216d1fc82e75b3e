package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

// SettingsStore persists application settings as a TOML file in the
// corrag config directory.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// tomlSettings is the on-disk shape of domain.AppSettings.
type tomlSettings struct {
	Embedding struct {
		Provider string   `toml:"provider,omitempty"`
		Models   []string `toml:"models,omitempty"`
		BaseURL  string   `toml:"base_url,omitempty"`
		APIKey   string   `toml:"api_key,omitempty"`
	} `toml:"embedding"`
	LLM struct {
		Provider string `toml:"provider,omitempty"`
		Model    string `toml:"model,omitempty"`
		BaseURL  string `toml:"base_url,omitempty"`
		APIKey   string `toml:"api_key,omitempty"`
	} `toml:"llm"`
	EnableCorrection *bool `toml:"enable_correction,omitempty"`
}

// NewSettingsStore creates a TOML-based settings store.
// If configDir is empty, defaults to ~/.corrag.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".corrag")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from disk. A missing file yields the defaults.
func (s *SettingsStore) Load() (domain.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultAppSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config: %w", err)
	}

	var parsed tomlSettings
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return settings, fmt.Errorf("parse config: %w", err)
	}

	settings.Embedding = domain.EmbeddingSettings{
		Provider: domain.AIProvider(parsed.Embedding.Provider),
		Models:   parsed.Embedding.Models,
		BaseURL:  parsed.Embedding.BaseURL,
		APIKey:   parsed.Embedding.APIKey,
	}
	settings.LLM = domain.LLMSettings{
		Provider: domain.AIProvider(parsed.LLM.Provider),
		Model:    parsed.LLM.Model,
		BaseURL:  parsed.LLM.BaseURL,
		APIKey:   parsed.LLM.APIKey,
	}
	if parsed.EnableCorrection != nil {
		settings.EnableCorrection = *parsed.EnableCorrection
	}

	return settings, nil
}

// Save writes settings to disk with restricted permissions; the file
// may hold an API key.
func (s *SettingsStore) Save(settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out tomlSettings
	out.Embedding.Provider = settings.Embedding.Provider.String()
	out.Embedding.Models = settings.Embedding.Models
	out.Embedding.BaseURL = settings.Embedding.BaseURL
	out.Embedding.APIKey = settings.Embedding.APIKey
	out.LLM.Provider = settings.LLM.Provider.String()
	out.LLM.Model = settings.LLM.Model
	out.LLM.BaseURL = settings.LLM.BaseURL
	out.LLM.APIKey = settings.LLM.APIKey
	out.EnableCorrection = &settings.EnableCorrection

	data, err := toml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

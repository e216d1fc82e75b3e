package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quarry-labs/corrag/internal/adapters/driven/ai"
	"github.com/quarry-labs/corrag/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI backends and the corrective retrieval stage.

Use subcommands to configure specific settings. Changes take effect on
the next run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding backend",
	Long:  `Configure the backend used to embed documents and queries. Without one, a deterministic local fallback is used.`,
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the completion backend",
	Long:  `Configure the LLM used for relevance evaluation and query refinement. Without one, evaluation falls back to a similarity heuristic.`,
	RunE:  runSettingsLLM,
}

var settingsCorrectionCmd = &cobra.Command{
	Use:   "correction [on|off]",
	Short: "Toggle the corrective retrieval stage",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsCorrection,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsCorrectionCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	if settings.Embedding.IsConfigured() {
		cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
		cmd.Printf("  Models: %s\n", strings.Join(settings.Embedding.ModelList(), ", "))
		if settings.Embedding.Provider.IsLocal() {
			cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
		}
		if settings.Embedding.Provider.RequiresAPIKey() {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Embedding.APIKey))
		}
	} else {
		cmd.Println("  Provider: (not configured, using local fallback)")
	}
	cmd.Println()

	cmd.Println("[LLM]")
	if settings.LLM.IsConfigured() {
		cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
		cmd.Printf("  Model: %s\n", settings.LLM.ModelName())
		if settings.LLM.Provider.IsLocal() {
			cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
		}
		if settings.LLM.Provider.RequiresAPIKey() {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		}
	} else {
		cmd.Println("  Provider: (not configured, using similarity heuristic)")
	}
	cmd.Println()

	cmd.Println("[Correction]")
	if settings.EnableCorrection {
		cmd.Println("  Enabled: yes")
	} else {
		cmd.Println("  Enabled: no")
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsStore.Path())
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)

	provider, err := selectProvider(cmd, reader)
	if err != nil {
		return err
	}

	embedding := domain.EmbeddingSettings{Provider: provider}

	if provider.IsLocal() {
		cmd.Print("Enter base URL [http://localhost:11434]: ")
		embedding.BaseURL = readLine(reader)
	}

	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		embedding.APIKey = readPassword()
		cmd.Println()
		if embedding.APIKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	cmd.Printf("Enter model names, comma-separated [%s]: ", strings.Join(domain.DefaultEmbeddingModels(), ", "))
	if models := readLine(reader); models != "" {
		for _, m := range strings.Split(models, ",") {
			if m = strings.TrimSpace(m); m != "" {
				embedding.Models = append(embedding.Models, m)
			}
		}
	}

	cmd.Print("Validating configuration... ")
	if err := ai.ValidateEmbeddingConfig(&embedding); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	settings.Embedding = embedding
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Embedding backend configured: %s\n", provider.Description())
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)

	provider, err := selectProvider(cmd, reader)
	if err != nil {
		return err
	}

	llm := domain.LLMSettings{Provider: provider}

	if provider.IsLocal() {
		cmd.Print("Enter base URL [http://localhost:11434]: ")
		llm.BaseURL = readLine(reader)
	}

	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		llm.APIKey = readPassword()
		cmd.Println()
		if llm.APIKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	cmd.Printf("Enter model name [%s]: ", domain.DefaultCompletionModel)
	llm.Model = readLine(reader)

	cmd.Print("Validating configuration... ")
	if err := ai.ValidateLLMConfig(&llm); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	settings.LLM = llm
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Completion backend configured: %s (%s)\n", provider.Description(), llm.ModelName())
	return nil
}

func runSettingsCorrection(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		enabled = true
	case "off", "false", "no":
		enabled = false
	default:
		return fmt.Errorf("invalid value %q: use on or off", args[0])
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.EnableCorrection = enabled
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if enabled {
		cmd.Println("Corrective retrieval enabled.")
	} else {
		cmd.Println("Corrective retrieval disabled.")
	}
	return nil
}

func selectProvider(cmd *cobra.Command, reader *bufio.Reader) (domain.AIProvider, error) {
	providers := domain.AllAIProviders()

	cmd.Println("Select Provider")
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	return providers[idx-1], nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// defaultModels suggests a model per provider during the wizard.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-haiku-4-5-20251001",
}

// RunWizard runs an interactive configuration wizard and saves the result
// to .repograph.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to repograph! Let's configure your setup.")
	fmt.Println()

	cfg := DefaultConfig()

	tokenPrompt := promptui.Prompt{
		Label:       "GitHub token (empty for unauthenticated, low rate limits)",
		Mask:        '*',
		HideEntered: true,
	}
	token, err := tokenPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("token prompt: %w", err)
	}
	cfg.GitHubToken = token

	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	providerPrompt := promptui.Select{
		Label: "AI analysis provider",
		Items: []string{"none", "openai", "anthropic"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	if providerStr != "none" {
		cfg.AIProvider = ProviderType(providerStr)
		cfg.AIModel = defaultModels[cfg.AIProvider]

		modelPrompt := promptui.Prompt{
			Label:   "Model",
			Default: cfg.AIModel,
		}
		model, err := modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("model prompt: %w", err)
		}
		cfg.AIModel = model
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(".repograph.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration written to .repograph.yml")
	return cfg, nil
}

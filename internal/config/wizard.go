package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .timesleuth.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to timesleuth! Let's configure your workspace.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "azure"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	// 2. Model / deployment.
	if cfg.Provider == ProviderAzure {
		endpointPrompt := promptui.Prompt{
			Label: "Azure OpenAI endpoint",
		}
		if cfg.AzureEndpoint, err = endpointPrompt.Run(); err != nil {
			return nil, fmt.Errorf("azure endpoint: %w", err)
		}
		deployPrompt := promptui.Prompt{
			Label: "Azure deployment name",
		}
		if cfg.AzureDeployment, err = deployPrompt.Run(); err != nil {
			return nil, fmt.Errorf("azure deployment: %w", err)
		}
		cfg.Model = cfg.AzureDeployment
	} else {
		modelPrompt := promptui.Prompt{
			Label:   "Model",
			Default: cfg.Model,
		}
		if cfg.Model, err = modelPrompt.Run(); err != nil {
			return nil, fmt.Errorf("model: %w", err)
		}
	}

	// 3. Default user.
	userPrompt := promptui.Prompt{
		Label: "Default user email",
		Validate: func(s string) error {
			if s == "" {
				return fmt.Errorf("user email is required")
			}
			return nil
		},
	}
	if cfg.User, err = userPrompt.Run(); err != nil {
		return nil, fmt.Errorf("user email: %w", err)
	}

	// 4. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for timesheet, calendar, and audit documents",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 5. Billing assumptions.
	ratePrompt := promptui.Prompt{
		Label:   "Billable rate (USD per hour)",
		Default: strconv.FormatFloat(cfg.BillableRate, 'f', -1, 64),
		Validate: func(s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || v < 0 {
				return fmt.Errorf("enter a non-negative number")
			}
			return nil
		},
	}
	rateStr, err := ratePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("billable rate: %w", err)
	}
	cfg.BillableRate, _ = strconv.ParseFloat(rateStr, 64)

	sizePrompt := promptui.Prompt{
		Label:   "Firm size (number of consultants)",
		Default: strconv.Itoa(cfg.FirmSize),
		Validate: func(s string) error {
			v, err := strconv.Atoi(s)
			if err != nil || v < 0 {
				return fmt.Errorf("enter a non-negative integer")
			}
			return nil
		},
	}
	sizeStr, err := sizePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("firm size: %w", err)
	}
	cfg.FirmSize, _ = strconv.Atoi(sizeStr)

	// Check for API key.
	envVar := APIKeyEnvVar(cfg.Provider)
	if envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running timesleuth analyze.\n", envVar)
	}

	// Save to .timesleuth.yml.
	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}

package llm

import (
	"fmt"
	"os"
)

// NewProvider creates a provider from explicit settings plus conventional
// environment variables. An Azure deployment wins when both endpoint and
// deployment are configured; otherwise the public OpenAI API is used.
func NewProvider(providerType, model, azureEndpoint, azureDeployment string) (Provider, error) {
	switch providerType {
	case "azure":
		if azureEndpoint == "" {
			azureEndpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")
		}
		if azureDeployment == "" {
			azureDeployment = os.Getenv("AZURE_OPENAI_DEPLOYMENT")
		}
		if azureEndpoint == "" || azureDeployment == "" {
			return nil, fmt.Errorf("azure provider requires an endpoint and a deployment name")
		}
		apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("AZURE_OPENAI_API_KEY environment variable is not set")
		}
		return NewAzureProvider(apiKey, azureEndpoint, azureDeployment), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

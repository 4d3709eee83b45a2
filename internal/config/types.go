package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderAzure  ProviderType = "azure"
)

// Config is the top-level timesleuth configuration, corresponding to
// .timesleuth.yml.
type Config struct {
	Provider        ProviderType `yaml:"provider" koanf:"provider"`
	Model           string       `yaml:"model" koanf:"model"`
	AzureEndpoint   string       `yaml:"azure_endpoint" koanf:"azure_endpoint"`
	AzureDeployment string       `yaml:"azure_deployment" koanf:"azure_deployment"`
	User            string       `yaml:"user" koanf:"user"`
	DataDir         string       `yaml:"data_dir" koanf:"data_dir"`
	TimesheetFile   string       `yaml:"timesheet_file" koanf:"timesheet_file"`
	CalendarFile    string       `yaml:"calendar_file" koanf:"calendar_file"`
	AuditFile       string       `yaml:"audit_file" koanf:"audit_file"`
	ArchiveFile     string       `yaml:"archive_file" koanf:"archive_file"`
	BillableRate    float64      `yaml:"billable_rate" koanf:"billable_rate"`
	FirmSize        int          `yaml:"firm_size" koanf:"firm_size"`
	RetentionDays   int          `yaml:"retention_days" koanf:"retention_days"`
	Server          ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Database — empty DATABASE_URL selects fixture mode
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	FixturesDir string `mapstructure:"FIXTURES_DIR"`

	// Redis — empty disables the async notify queue (direct send fallback)
	RedisURL       string `mapstructure:"REDIS_URL"`
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// External auth verifier. When AUTH_URL is empty the resolver accepts
	// the x-user-role/x-user-id override headers and the static dev token
	// map — never deploy a production binding without AUTH_URL.
	AuthURL    string `mapstructure:"AUTH_URL"`
	AuthAPIKey string `mapstructure:"AUTH_API_KEY"`

	// Object storage (payment proofs)
	StorageURL  string `mapstructure:"STORAGE_URL"`
	StorageKey  string `mapstructure:"STORAGE_KEY"`
	ProofBucket string `mapstructure:"PROOF_BUCKET"`

	// WhatsApp notifications (Fonnte)
	FonnteURL       string `mapstructure:"FONNTE_URL"`
	FonnteToken     string `mapstructure:"FONNTE_TOKEN"`
	AdminRecipients string `mapstructure:"WHATSAPP_ADMIN_RECIPIENTS"` // comma-separated

	// Payment bounds — zero disables the check
	PaymentMin int64 `mapstructure:"PAYMENT_MIN"`
	PaymentMax int64 `mapstructure:"PAYMENT_MAX"`

	// Bank transfer instructions shown to customers
	BankName    string `mapstructure:"BANK_NAME"`
	BankAccount string `mapstructure:"BANK_ACCOUNT"`
	BankHolder  string `mapstructure:"BANK_HOLDER"`
	BankNotes   string `mapstructure:"BANK_NOTES"`

	// Customer tracking page base, embedded in notification messages
	TrackBasePath string `mapstructure:"TRACK_BASE_PATH"`
}

// LiveAuth reports whether an external auth verifier is configured.
func (c *Config) LiveAuth() bool { return c.AuthURL != "" }

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("FIXTURES_DIR", "fixtures")
	viper.SetDefault("WORKER_POOL_SIZE", 3)
	viper.SetDefault("PROOF_BUCKET", "payment_proofs")
	viper.SetDefault("BANK_NAME", "BCA")
	viper.SetDefault("BANK_ACCOUNT", "1234567890")
	viper.SetDefault("BANK_HOLDER", "SURYA PAINT")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

package config

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Operator  OperatorConfig
	Billing   BillingConfig
	Store     StoreConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

// OperatorConfig is the single account allowed to run the terminal
type OperatorConfig struct {
	Username    string
	Password    string
	DisplayName string
}

type BillingConfig struct {
	TaxRate          decimal.Decimal
	BillPrefix       string
	SeedDemoCatalog  bool
	IdempotencyTTL   time.Duration
	ExportSheetTitle string
}

// StoreConfig is printed at the top of every receipt
type StoreConfig struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

type PrinterConfig struct {
	Type    string // usb, network or none
	USBPath string
	Address string
	Width   int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	taxRate, err := decimal.NewFromString(viper.GetString("BILLING_TAX_RATE"))
	if err != nil || taxRate.IsNegative() {
		log.Printf("Warning: invalid BILLING_TAX_RATE %q, using 0.18", viper.GetString("BILLING_TAX_RATE"))
		taxRate = decimal.RequireFromString("0.18")
	}

	return &Config{
		App: AppConfig{
			Name: viper.GetString("APP_NAME"),
			Env:  viper.GetString("APP_ENV"),
			Port: viper.GetString("APP_PORT"),
		},
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("DB_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Operator: OperatorConfig{
			Username:    viper.GetString("OPERATOR_USERNAME"),
			Password:    viper.GetString("OPERATOR_PASSWORD"),
			DisplayName: viper.GetString("OPERATOR_DISPLAY_NAME"),
		},
		Billing: BillingConfig{
			TaxRate:          taxRate,
			BillPrefix:       viper.GetString("BILLING_BILL_PREFIX"),
			SeedDemoCatalog:  viper.GetBool("BILLING_SEED_DEMO_CATALOG"),
			IdempotencyTTL:   time.Duration(viper.GetInt("BILLING_IDEMPOTENCY_TTL_HOURS")) * time.Hour,
			ExportSheetTitle: viper.GetString("BILLING_EXPORT_SHEET"),
		},
		Store: StoreConfig{
			Name:    viper.GetString("STORE_NAME"),
			Address: viper.GetString("STORE_ADDRESS"),
			Phone:   viper.GetString("STORE_PHONE"),
			TaxID:   viper.GetString("STORE_TAX_ID"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "smart-billing")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("DB_ENABLED", false)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "smart_billing")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("OPERATOR_USERNAME", "cashier")
	viper.SetDefault("OPERATOR_PASSWORD", "cashier")
	viper.SetDefault("OPERATOR_DISPLAY_NAME", "Cashier")
	viper.SetDefault("BILLING_TAX_RATE", "0.18")
	viper.SetDefault("BILLING_BILL_PREFIX", "BILL")
	viper.SetDefault("BILLING_SEED_DEMO_CATALOG", true)
	viper.SetDefault("BILLING_IDEMPOTENCY_TTL_HOURS", 24)
	viper.SetDefault("BILLING_EXPORT_SHEET", "Bills")
	viper.SetDefault("STORE_NAME", "Smart Billing")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "info")
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

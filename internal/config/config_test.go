package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := Load()

	assert.Equal(t, "smart-billing", cfg.App.Name)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "0.18", cfg.Billing.TaxRate.String())
	assert.Equal(t, "BILL", cfg.Billing.BillPrefix)
	assert.True(t, cfg.Billing.SeedDemoCatalog)
	assert.Equal(t, 24*time.Hour, cfg.Billing.IdempotencyTTL)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 32, cfg.Printer.Width)
	assert.Equal(t, "cashier", cfg.Operator.Username)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("BILLING_TAX_RATE", "0.05")
	t.Setenv("BILLING_BILL_PREFIX", "INV")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("JWT_EXPIRY_HOURS", "2")

	cfg := Load()

	assert.Equal(t, "0.05", cfg.Billing.TaxRate.String())
	assert.Equal(t, "INV", cfg.Billing.BillPrefix)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiryHours)
}

func TestLoad_InvalidTaxRateFallsBack(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("BILLING_TAX_RATE", "eighteen")

	cfg := Load()
	assert.Equal(t, "0.18", cfg.Billing.TaxRate.String())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}

package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"shop": map[string]any{
			"freeShippingThreshold": "49.00",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"orders": map[string]any{
			"strictTransitions": false,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SHOP_FREESHIPPINGTHRESHOLD", want: "shop.freeShippingThreshold"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "ORDERS_STRICTTRANSITIONS", want: "orders.strictTransitions"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func newValidConfig() *Config {
	cfg := &Config{Postgres: &postgres.DBConn{}}
	cfg.SecretKey.Access = "a-long-enough-secret"
	cfg.ApplyDefaults()

	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := newValidConfig()

	assert.Equal(t, EnvDevelopment, cfg.Env.Env)
	assert.Equal(t, 3001, cfg.HTTP.Port)
	assert.Equal(t, "100KB", cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Shop.FreeShippingThreshold.Equal(decimal.RequireFromString("49")))
	assert.True(t, cfg.Shop.FlatShippingCost.Equal(decimal.RequireFromString("5.99")))
	assert.False(t, cfg.Orders.StrictTransitions)
	assert.Equal(t, 256, cfg.QRCode.Size)
	assert.Equal(t, 3002, cfg.Worker.Port)
	assert.False(t, cfg.Worker.VerifyPushAuth)
	assert.Nil(t, cfg.Redis)
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, newValidConfig().Validate())
	})

	t.Run("short secret", func(t *testing.T) {
		cfg := newValidConfig()
		cfg.SecretKey.Access = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown env", func(t *testing.T) {
		cfg := newValidConfig()
		cfg.Env.Env = "staging"
		assert.Error(t, cfg.Validate())
	})

	t.Run("port out of range", func(t *testing.T) {
		cfg := newValidConfig()
		cfg.HTTP.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown event provider", func(t *testing.T) {
		cfg := newValidConfig()
		cfg.Events = &EventsConfig{Provider: "kafka"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing postgres", func(t *testing.T) {
		cfg := newValidConfig()
		cfg.Postgres = nil
		assert.Error(t, cfg.Validate())
	})
}

func TestStringToDecimalHook(t *testing.T) {
	hook := stringToDecimalHookFunc()
	target := decimal.Decimal{}

	out, err := hook(reflect.TypeOf(""), reflect.TypeOf(target), "49.00")
	require.NoError(t, err)
	assert.True(t, out.(decimal.Decimal).Equal(decimal.RequireFromString("49")))

	out, err = hook(reflect.TypeOf(0.0), reflect.TypeOf(target), 5.99)
	require.NoError(t, err)
	assert.True(t, out.(decimal.Decimal).Equal(decimal.RequireFromString("5.99")))

	out, err = hook(reflect.TypeOf(""), reflect.TypeOf(""), "untouched")
	require.NoError(t, err)
	assert.Equal(t, "untouched", out)
}

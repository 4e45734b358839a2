package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env

	cfg := LoadConfig()
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8001, cfg.Port)
	require.Equal(t, "sqlite", cfg.StoreDriver)
	require.Equal(t, "banco.db", cfg.DatabaseFile)
	require.Equal(t, "mi-banco", cfg.DBName)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, []string{"http://localhost:4200"}, cfg.AllowedOrigins)
	require.True(t, cfg.MetricsEnabled)
	require.Empty(t, cfg.TrustedProxies)
	require.Empty(t, cfg.RedisURL)
	require.Empty(t, cfg.RabbitMQURL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("DB_CONNECTION_TIMEOUT", "3")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "1m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.cl, ,https://b.cl")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")

	cfg := LoadConfig()
	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, "mongo", cfg.StoreDriver)
	require.Equal(t, 3*time.Second, cfg.DBConnTimeout)
	require.Equal(t, time.Minute, cfg.ShutdownGracePeriod)
	require.Equal(t, []string{"https://a.cl", "https://b.cl"}, cfg.AllowedOrigins)
	require.False(t, cfg.MetricsEnabled)
	require.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_NAME=desde-dotenv\nPORT=not-a-number\n"), 0o600))

	// godotenv writes to the process environment; register restores first.
	for _, key := range []string{"DB_NAME", "PORT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := LoadConfig()
	require.Equal(t, "desde-dotenv", cfg.DBName)
	require.Equal(t, 8001, cfg.Port)
}

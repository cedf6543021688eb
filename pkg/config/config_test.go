package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Telemetry.Enabled())
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "*/15 * * * *", cfg.Audit.Cron)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "12")
	t.Setenv("DB_FORCE_IPV4", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4318")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv("AUDIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 12, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Telemetry.Enabled())
	assert.InDelta(t, 0.25, cfg.Telemetry.SampleRatio, 1e-9)
	assert.False(t, cfg.Audit.Enabled)
}

func TestLoad_PuertoInvalido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "warehouse", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/warehouse?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://u:p@h:5432/x?sslmode=require"
	assert.Equal(t, c.DatabaseURL, c.ConnectionString())
}

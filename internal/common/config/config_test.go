package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_GetDSN_Postgres(t *testing.T) {
	c := &DatabaseConfig{Type: "postgres", Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", c.GetDSN())
}

func TestDatabaseConfig_GetDSN_MySQL(t *testing.T) {
	c := &DatabaseConfig{Type: "mysql", Host: "h", Port: 3306, User: "u", Password: "p", DBName: "d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=Local", c.GetDSN())
}

func TestDatabaseConfig_GetDSN_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "auth.db")
	c := &DatabaseConfig{Type: "sqlite", DBName: dbPath}
	assert.Equal(t, dbPath, c.GetDSN())
	// directory created as a side effect
	_, err := os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
}

func TestDatabaseConfig_GetDSN_Unknown(t *testing.T) {
	c := &DatabaseConfig{Type: "unknown"}
	assert.Equal(t, "", c.GetDSN())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "authserver.yaml")
	content := `
port: 9090
database:
  type: sqlite
  dbname: ` + filepath.Join(dir, "auth.db") + `
storage:
  type: memory
jwt:
  secret_key: ${AUTH_JWT_SECRET:0123456789abcdef0123456789abcdef}
  duration: 2h
logger:
  level: debug
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, cfgPath, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, path, cfgPath)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.JWT.SecretKey)
	assert.Equal(t, 2*time.Hour, time.Duration(cfg.JWT.Duration))
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authserver.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("logger:\n  level: info\n"), 0644))

	cfg, _, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "database", cfg.Storage.Type)
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("AUTH_TEST_VALUE", "from-env")
	out := resolveEnv([]byte("a: ${AUTH_TEST_VALUE}\nb: ${AUTH_TEST_MISSING:fallback}\n"))
	assert.Equal(t, "a: from-env\nb: fallback\n", string(out))
}

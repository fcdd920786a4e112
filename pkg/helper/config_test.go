package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCfgPath_Absolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "authserver.yaml")
	assert.Equal(t, abs, GetCfgPath(abs))
}

func TestGetCfgPath_CurrentDir(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	path := filepath.Join(dir, "authserver.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("port: 8080\n"), 0644))

	got := GetCfgPath("authserver.yaml")
	assert.Equal(t, path, got)
}

func TestGetCfgPath_Fallback(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	assert.Equal(t, "/etc/authserver/missing.yaml", GetCfgPath("missing.yaml"))
}

func TestGetCfgPath_EmptyPanics(t *testing.T) {
	assert.Panics(t, func() { GetCfgPath("") })
}

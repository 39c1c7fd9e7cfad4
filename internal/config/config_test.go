package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1024, cfg.Runtime.PoolSize)
	assert.Equal(t, 10000000, cfg.Runtime.MailboxCapacity)
	assert.Equal(t, 1, cfg.Runtime.TimerTickMs)
	assert.Equal(t, int64(4096), cfg.Runtime.TimerWheelSize)
	assert.Equal(t, "info", cfg.Glog.Level)
}

func TestLoadMergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jack.yaml")
	content := []byte(`
glog:
  level: debug
runtime:
  poolSize: 8
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Glog.Level)
	assert.Equal(t, 8, cfg.Runtime.PoolSize)
	// 文件里没写的键保留默认值
	assert.Equal(t, 10000000, cfg.Runtime.MailboxCapacity)
	assert.True(t, cfg.Glog.PrintConsole)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}

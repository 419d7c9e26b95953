package internal

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viperWithFile(t *testing.T, path, body string) *viper.Viper {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(body), 0o644))
	v := viper.New()
	v.SetFs(fs)
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "novadoc", cfg.AppName)
	assert.Equal(t, "fs", cfg.Storage.Backend)
	assert.Equal(t, "./databases", cfg.Storage.Root)
	assert.Equal(t, "json", cfg.Storage.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "novadoc> ", cfg.REPL.Prompt)
	assert.Equal(t, 2000, cfg.REPL.HistoryMax)
}

func TestLoadConfig_File(t *testing.T) {
	v := viperWithFile(t, "/etc/novadoc.yaml", `
app_name: shop
storage:
  backend: s3
  format: bson
  s3:
    bucket: tables
    prefix: prod
    endpoint: http://localhost:9000
log:
  level: debug
  development: true
repl:
  prompt: "sql> "
`)
	cfg, err := LoadConfigWith(v, "/etc/novadoc.yaml")
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.AppName)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "bson", cfg.Storage.Format)
	assert.Equal(t, "tables", cfg.Storage.S3.Bucket)
	assert.Equal(t, "prod", cfg.Storage.S3.Prefix)
	assert.Equal(t, "http://localhost:9000", cfg.Storage.S3.Endpoint)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, "sql> ", cfg.REPL.Prompt)
	// untouched keys keep defaults
	assert.Equal(t, 2000, cfg.REPL.HistoryMax)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NOVADOC_STORAGE_FORMAT", "bson")
	t.Setenv("NOVADOC_STORAGE_ROOT", "/var/lib/novadoc")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "bson", cfg.Storage.Format)
	assert.Equal(t, "/var/lib/novadoc", cfg.Storage.Root)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	v := viper.New()
	v.SetFs(afero.NewMemMapFs())
	_, err := LoadConfigWith(v, "/nope.yaml")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() NovaDocConfig {
		var c NovaDocConfig
		c.Storage.Backend = "fs"
		c.Storage.Root = "./data"
		c.Storage.Format = "json"
		return c
	}

	c := base()
	require.NoError(t, c.Validate())

	c = base()
	c.Storage.Backend = "ftp"
	require.ErrorIs(t, c.Validate(), ErrInvalidConfig)

	c = base()
	c.Storage.Backend = "s3"
	require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
	c.Storage.S3.Bucket = "b"
	require.NoError(t, c.Validate())

	c = base()
	c.Storage.Format = "xml"
	require.ErrorIs(t, c.Validate(), ErrInvalidConfig)

	c = base()
	c.Storage.Backend = "memory"
	c.Storage.Root = ""
	require.NoError(t, c.Validate())

	c = base()
	c.REPL.HistoryMax = -1
	require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1))

	_, err = NewLogger(LogConfig{Level: "loud"})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

package template

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/config"
)

func TestGetConfigLoads(t *testing.T) {
	tmpl := NewProjectTemplate("http://inventory.local:9000/")

	v := viper.New()
	v.SetConfigType("json")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(tmpl.GetConfig())))

	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://inventory.local:9000", cfg.API.BaseURL)
	assert.Equal(t, tmpl.TokenEnv, cfg.API.TokenEnv)
	assert.Equal(t, 10, cfg.List.PageSize)
	assert.Equal(t, 20, cfg.Reports.PageSize)
}

func TestDefaults(t *testing.T) {
	tmpl := NewProjectTemplate("")
	assert.Equal(t, "http://localhost:8080", tmpl.BaseURL)
	assert.Contains(t, tmpl.GetEnvTemplate(), "STOCKPANEL_API_TOKEN=")
	assert.Equal(t, []string{"exports"}, tmpl.GetDirectoryStructure())
}

package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/adcu-admin/adcu-admin/internal/auth"
)

func TestWritePolicy_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePolicy(&buf, "yaml"))

	var rows []auth.MatrixRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, auth.Matrix(), rows)
}

func TestWritePolicy_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePolicy(&buf, "json"))

	var rows []auth.MatrixRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 16)

	assert.Equal(t, "users.create", rows[0].Permission)
	assert.Equal(t, map[string]bool{"admin": true, "staff": true, "contractor": true}, rows[0].Roles)
	assert.Equal(t, "contracts.update", rows[6].Permission)
	assert.Equal(t, map[string]bool{"admin": true, "staff": false, "contractor": false}, rows[6].Roles)
}

func TestWritePolicy_UnknownFormat(t *testing.T) {
	require.ErrorIs(t, writePolicy(&bytes.Buffer{}, "xml"), ErrUnknownFormat)
}

func TestPolicyCommand(t *testing.T) {
	var buf bytes.Buffer

	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"policy", "--format", "json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		policyFormat = "yaml"
	})

	require.NoError(t, Execute())
	assert.Contains(t, buf.String(), `"permission": "documents.delete"`)
}

func TestConfigDir(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv(EnvConfigDir, "/srv/adcu/etc")
	viper.Reset()
	require.NoError(t, viper.BindEnv(keyConfigDir, EnvConfigDir))

	assert.Equal(t, "/srv/adcu/etc/", configDir())

	viper.Set(keyConfigDir, "conf/")
	assert.Equal(t, "conf/", configDir())
}

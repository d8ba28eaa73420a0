package env

import (
	"os"
	"path/filepath"
	"testing"

	"tosipeli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewGameConfigFromYAML_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewGameConfigFromYAML(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 0.10, cfg.CenterWinProbability())
	assert.Equal(t, len(model.DefaultInsurers), cfg.Catalog().Len())
	assert.Equal(t, "if", cfg.Catalog().At(0).ID)
}

func TestNewGameConfigFromYAML_Overrides(t *testing.T) {
	path := writeConfig(t, `
game:
  center_win_probability: 0.25
  insurers:
    - id: a
      name: Alpha
      image: a.png
    - id: b
      name: Beta
      image: b.png
`)

	cfg, err := NewGameConfigFromYAML(path)
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.CenterWinProbability())
	require.Equal(t, 2, cfg.Catalog().Len())
	assert.Equal(t, model.Insurer{ID: "b", Name: "Beta", Image: "b.png"}, cfg.Catalog().At(1))
}

func TestNewGameConfigFromYAML_KeepsDefaultCatalogWhenOnlyBiasSet(t *testing.T) {
	path := writeConfig(t, "game:\n  center_win_probability: 0\n")

	cfg, err := NewGameConfigFromYAML(path)
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.CenterWinProbability())
	assert.Equal(t, 6, cfg.Catalog().Len())
}

func TestNewGameConfigFromYAML_Invalid(t *testing.T) {
	cases := map[string]string{
		"probability above one": "game:\n  center_win_probability: 1.5\n",
		"duplicate insurer":     "game:\n  insurers:\n    - id: a\n    - id: a\n",
		"blank insurer id":      "game:\n  insurers:\n    - name: Nameless\n",
		"broken yaml":           "game: [",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewGameConfigFromYAML(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

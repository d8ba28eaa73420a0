package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"tosipeli/internal/config"
	"tosipeli/internal/model"

	"gopkg.in/yaml.v3"
)

const (
	gameConfigEnvName = "GAME_CONFIG"
	defaultGameConfig = "config.yaml"

	defaultCenterWinProbability = 0.10
)

type gameFile struct {
	Game struct {
		CenterWinProbability *float64 `yaml:"center_win_probability"`
		Insurers             []struct {
			ID    string `yaml:"id"`
			Name  string `yaml:"name"`
			Image string `yaml:"image"`
		} `yaml:"insurers"`
	} `yaml:"game"`
}

type gameConfig struct {
	catalog              model.Catalog
	centerWinProbability float64
}

// GameConfigPath path from GAME_CONFIG or config.yaml
func GameConfigPath() string {
	return getOr(gameConfigEnvName, defaultGameConfig)
}

// NewGameConfigFromYAML reads the catalog and draw bias.
// A missing file yields the built-in catalog and the default bias.
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	cfg := &gameConfig{
		catalog:              model.DefaultCatalog(),
		centerWinProbability: defaultCenterWinProbability,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read game config: %w", err)
	}

	var file gameFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse game config %s: %w", path, err)
	}

	if p := file.Game.CenterWinProbability; p != nil {
		if *p < 0 || *p > 1 {
			return nil, fmt.Errorf("center_win_probability must be within [0, 1], got %v", *p)
		}
		cfg.centerWinProbability = *p
	}

	if len(file.Game.Insurers) > 0 {
		insurers := make([]model.Insurer, len(file.Game.Insurers))
		for i, ins := range file.Game.Insurers {
			insurers[i] = model.Insurer{ID: ins.ID, Name: ins.Name, Image: ins.Image}
		}
		catalog, err := model.NewCatalog(insurers)
		if err != nil {
			return nil, fmt.Errorf("game config catalog: %w", err)
		}
		cfg.catalog = catalog
	}

	return cfg, nil
}

func (cfg *gameConfig) Catalog() model.Catalog {
	return cfg.catalog
}

func (cfg *gameConfig) CenterWinProbability() float64 {
	return cfg.centerWinProbability
}

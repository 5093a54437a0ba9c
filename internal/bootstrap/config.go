package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"filler/internal/domain/game"
	"filler/internal/usecase/search"
)

type Config struct {
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	RedisUrl      string        `mapstructure:"REDIS_URL"`
	IsLocalCors   bool          `mapstructure:"LOCAL_CORS"`
	BoardRows     int           `mapstructure:"BOARD_ROWS"`
	BoardCols     int           `mapstructure:"BOARD_COLS"`
	Palette       string        `mapstructure:"PALETTE"`
	SearchDepth   int           `mapstructure:"SEARCH_DEPTH"`
	SearchWorkers int           `mapstructure:"SEARCH_WORKERS"`
	AnalysisTTL   time.Duration `mapstructure:"ANALYSIS_TTL"`
	SelfplayGames int           `mapstructure:"SELFPLAY_GAMES"`
	SelfplaySeed  int64         `mapstructure:"SELFPLAY_SEED"`
}

var configKeys = map[string]any{
	"SERVER_PORT":    ":8080",
	"REDIS_URL":      "",
	"LOCAL_CORS":     false,
	"BOARD_ROWS":     7,
	"BOARD_COLS":     8,
	"PALETTE":        "rgbyk",
	"SEARCH_DEPTH":   search.DefaultDepth,
	"SEARCH_WORKERS": 1,
	"ANALYSIS_TTL":   time.Hour,
	"SELFPLAY_GAMES": 10,
	"SELFPLAY_SEED":  1,
}

// Setup reads cfgPath (a .env style file) if it exists, then lets
// environment variables override it. A missing file is not an error.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, def := range configKeys {
		v.SetDefault(key, def)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.GameConfig(); err != nil {
		return nil, err
	}
	if cfg.SearchDepth < 0 {
		return nil, fmt.Errorf("SEARCH_DEPTH must not be negative, got %d", cfg.SearchDepth)
	}

	return &cfg, nil
}

func (c Config) GameConfig() (game.Config, error) {
	gc := game.Config{
		Rows:    c.BoardRows,
		Cols:    c.BoardCols,
		Palette: game.ParsePalette(c.Palette),
	}
	if err := gc.Validate(); err != nil {
		return game.Config{}, err
	}
	return gc, nil
}

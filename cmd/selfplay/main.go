package main

import (
	"context"

	"go.uber.org/zap"

	"filler/internal/bootstrap"
	"filler/internal/domain/game"
	"filler/internal/repository"
	gameUC "filler/internal/usecase/game"
	"filler/internal/usecase/search"
)

// Plays SELFPLAY_GAMES seeded engine-vs-engine games. Player1 searches one
// ply shallower than Player2.
func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", "error", err)
		return
	}
	gameCfg, err := cfg.GameConfig()
	if err != nil {
		logger.Fatalw("Invalid board configuration", "error", err)
	}

	engine := search.NewEngine(logger, cfg.SearchWorkers)
	uc := gameUC.NewGameUseCase(gameCfg, cfg.SearchDepth, engine, repository.NewMemoryAnalysisStore(1024), logger)

	ctx := context.Background()
	maxTurns := 4 * gameCfg.Size()
	var wins [3]int

	for i := 0; i < cfg.SelfplayGames; i++ {
		seed := cfg.SelfplaySeed + int64(i)
		state, err := uc.NewRandomGame(seed)
		if err != nil {
			logger.Fatalw("Failed to create game", "error", err)
		}

		m := uc.NewMatch(state)
		for !m.Done() && m.Turns() < maxTurns {
			depth := cfg.SearchDepth
			if m.Current() == game.Player1 {
				depth = max(depth-1, 0)
			}
			if _, err := m.PlayAIAtDepth(ctx, depth); err != nil {
				logger.Errorw("Engine failed", "seed", seed, "error", err)
				break
			}
		}

		o := m.Outcome()
		wins[o.Winner]++
		logger.Infow("Game finished",
			"seed", seed,
			"turns", m.Turns(),
			"player1", o.Player1,
			"player2", o.Player2,
			"winner", o.Winner.String(),
			"complete", state.IsGameOver(),
		)
	}

	logger.Infow("Self-play summary",
		"games", cfg.SelfplayGames,
		"player1_wins", wins[game.Player1],
		"player2_wins", wins[game.Player2],
		"ties", wins[game.NoPlayer],
	)
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

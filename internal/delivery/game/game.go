package game

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"filler/internal/domain/analysis"
	"filler/internal/domain/game"
	ferrors "filler/internal/errors"
	"filler/internal/httpresponse"
	"filler/internal/middleware"
	gameuc "filler/internal/usecase/game"
	"filler/internal/utils"
)

type NewGameRequest struct {
	Seed *int64   `json:"seed,omitempty"`
	Grid []string `json:"grid,omitempty"`
}

type StateRequest struct {
	State game.Snapshot `json:"state"`
}

type MoveRequest struct {
	State game.Snapshot `json:"state"`
	Color string        `json:"color"`
}

type ValidMovesResponse struct {
	Current string `json:"current"`
	Moves   string `json:"moves"`
}

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: gameUC,
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Post("/newGame", g.HandleNewGame)
	r.Post("/validMoves", g.HandleValidMoves)
	r.Post("/move", g.HandleMove)
	r.Post("/bestMove", g.HandleBestMove)
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.writeError(w, r, err)
		return
	}

	var (
		state *game.State
		err   error
	)
	if len(req.Grid) > 0 {
		state, err = g.gameUC.NewManualGame(req.Grid)
	} else {
		seed := time.Now().UnixNano()
		if req.Seed != nil {
			seed = *req.Seed
		}
		state, err = g.gameUC.NewRandomGame(seed)
	}
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state.Snapshot())
}

func (g *GameHandler) HandleValidMoves(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.writeError(w, r, err)
		return
	}
	state, err := g.gameUC.LoadState(req.State)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, ValidMovesResponse{
		Current: state.Current().String(),
		Moves:   game.Palette(state.ValidMoves()).String(),
	})
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.writeError(w, r, err)
		return
	}
	state, err := g.gameUC.LoadState(req.State)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	color, err := game.ParseColor(state.Config(), req.Color)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	if err := g.gameUC.PlayMove(state, color); err != nil {
		g.writeError(w, r, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state.Snapshot())
}

func (g *GameHandler) HandleBestMove(w http.ResponseWriter, r *http.Request) {
	var req analysis.BestMoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.writeError(w, r, err)
		return
	}
	state, err := g.gameUC.LoadState(req.State)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	depth := g.gameUC.Depth()
	if req.Depth != nil {
		depth = *req.Depth
	}

	result, cached, err := g.gameUC.BestMove(r.Context(), state, depth)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	requestID := middleware.GetRequestID(r.Context())
	g.log.Infow("best move",
		"request_id", requestID,
		"side", result.Side.String(),
		"color", result.Color.String(),
		"value", result.Value,
		"depth", result.Depth,
		"cached", cached,
	)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, analysis.BestMoveResponse{
		Analysis:  result,
		Cached:    cached,
		RequestID: requestID,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ferrors.ErrMalformedRequest),
		errors.Is(err, ferrors.ErrInvalidMove),
		errors.Is(err, ferrors.ErrMalformedBoard),
		errors.Is(err, ferrors.ErrInvalidSnapshot),
		errors.Is(err, ferrors.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, ferrors.ErrGameOver),
		errors.Is(err, ferrors.ErrNoValidMove):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (g *GameHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		g.log.Errorw("request failed", "path", r.URL.Path, "request_id", middleware.GetRequestID(r.Context()), "error", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	g.log.Debugw("request rejected", "path", r.URL.Path, "status", status, "error", err)
	httpresponse.WriteError(w, status, err.Error())
}

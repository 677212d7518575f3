package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"poker-tracker/internal/service"
)

type Server struct {
	query  *service.QueryService
	logger zerolog.Logger
}

func New(query *service.QueryService, logger zerolog.Logger) *Server {
	return &Server{query: query, logger: logger}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/players/{username}", s.handlePlayer)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	overview, err := s.query.PlayerOverview(r.Context(), username)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "player not found"})
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to serve player")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	resp := playerResponse{
		ID:        overview.Profile.ID,
		Username:  overview.Profile.Username,
		CreatedAt: overview.Profile.CreatedAt,
		UpdatedAt: overview.Profile.UpdatedAt,
	}
	for _, snap := range overview.Snapshots {
		resp.Snapshots = append(resp.Snapshots, snapshotResponse{
			ID:             snap.ID,
			VPIP:           snap.VPIP,
			PFR:            snap.PFR,
			ThreeBet:       snap.ThreeBet,
			FoldToThreeBet: snap.FoldToThreeBet,
			Steal:          snap.Steal,
			CheckRaise:     snap.CheckRaise,
			Cbet:           snap.Cbet,
			FoldToCbet:     snap.FoldToCbet,
			Fold:           snap.Fold,
			WTSD:           snap.WTSD,
			WSD:            snap.WSD,
			CreatedAt:      snap.CreatedAt,
		})
	}
	if overview.Notes != nil {
		resp.Notes = &notesResponse{
			Tags:            overview.Notes.PlayerTags,
			Summary:         overview.Notes.ProfileSummary,
			ExploitStrategy: overview.Notes.ExploitStrategy,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type errorResponse struct {
	Error string `json:"error"`
}

type playerResponse struct {
	ID        string             `json:"id"`
	Username  string             `json:"username"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Snapshots []snapshotResponse `json:"snapshots,omitempty"`
	Notes     *notesResponse     `json:"notes,omitempty"`
}

type snapshotResponse struct {
	ID             string    `json:"id"`
	VPIP           float64   `json:"vpip"`
	PFR            float64   `json:"pfr"`
	ThreeBet       float64   `json:"three_bet"`
	FoldToThreeBet float64   `json:"fold_to_three_bet"`
	Steal          float64   `json:"steal"`
	CheckRaise     float64   `json:"check_raise"`
	Cbet           float64   `json:"cbet"`
	FoldToCbet     float64   `json:"fold_to_cbet"`
	Fold           float64   `json:"fold"`
	WTSD           float64   `json:"wtsd"`
	WSD            float64   `json:"wsd"`
	CreatedAt      time.Time `json:"created_at"`
}

type notesResponse struct {
	Tags            []string `json:"tags"`
	Summary         []string `json:"summary"`
	ExploitStrategy []string `json:"exploit_strategy"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

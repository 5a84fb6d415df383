package projects

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	auth "HDDPull/internal/auth"
	"HDDPull/internal/calc/hdd"
	repo "HDDPull/internal/repo"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler stores analyses per user. Results are always recomputed on save so
// a stored result matches its stored input.
type Handler struct {
	Repo       repo.Repository
	Calculator *hdd.Calculator
	Log        *zap.Logger
}

type SaveRequest struct {
	Name string             `json:"name"`
	Pipe hdd.PipeParams     `json:"pipe"`
	Path hdd.BorePathParams `json:"path"`
}

type SaveResponse struct {
	ID     int                   `json:"id"`
	Result hdd.CalculationResult `json:"result"`
}

const maxNameLen = 120

func (h *Handler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > maxNameLen {
		http.Error(w, "Name required (max 120 characters)", http.StatusBadRequest)
		return
	}

	calc := h.Calculator
	if calc == nil {
		calc = hdd.Default()
	}
	res, err := calc.Compute(req.Pipe, req.Path)
	if err != nil {
		hdd.RespondError(w, err)
		return
	}

	id, err := h.Repo.SaveAnalysis(r.Context(), repo.Analysis{
		UserID: userID,
		Name:   req.Name,
		Input:  hdd.Request{Pipe: req.Pipe, Path: req.Path},
		Result: res,
	})
	if err != nil {
		h.logger().Error("save analysis", zap.Int("user_id", userID), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SaveResponse{ID: id, Result: res})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.Repo.ListAnalyses(r.Context(), userID)
	if err != nil {
		h.logger().Error("list analyses", zap.Int("user_id", userID), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.GetAnalysis(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Analysis not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger().Error("get analysis", zap.Int("user_id", userID), zap.Int("id", id), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

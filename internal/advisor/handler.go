package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"HDDPull/internal/calc/hdd"

	"go.uber.org/zap"
)

const adviseTimeout = 60 * time.Second

type Response struct {
	Result hdd.CalculationResult `json:"result"`
	Advice Advice                `json:"advice"`
}

// Handler serves advisory requests. A nil Advisor answers 503.
type Handler struct {
	Advisor    *Advisor
	Calculator *hdd.Calculator
	Log        *zap.Logger
}

func (h *Handler) Advise(w http.ResponseWriter, r *http.Request) {
	if h.Advisor == nil {
		http.Error(w, "Advisory not configured", http.StatusServiceUnavailable)
		return
	}
	var req hdd.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
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

	ctx, cancel := context.WithTimeout(r.Context(), adviseTimeout)
	defer cancel()
	advice, err := h.Advisor.Advise(ctx, req, res)
	if err != nil {
		if h.Log != nil {
			h.Log.Warn("advisory failed", zap.Error(err))
		}
		http.Error(w, "Advisory unavailable", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{Result: res, Advice: advice})
}

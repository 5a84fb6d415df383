package batch

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"HDDPull/internal/calc/hdd"

	"go.uber.org/zap"
)

type Handler struct {
	Calculator *hdd.Calculator
	Log        *zap.Logger
}

func (h *Handler) Pull(w http.ResponseWriter, r *http.Request) {
	var input PullBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	calc := h.Calculator
	if calc == nil {
		calc = hdd.Default()
	}
	res, err := CalculatePull(calc, input)
	if err != nil {
		var item *ItemError
		if errors.As(err, &item) {
			w.Header().Set("X-Batch-Item", strconv.Itoa(item.Index))
		}
		if h.Log != nil {
			h.Log.Debug("batch rejected", zap.Int("items", len(input.Items)), zap.Error(err))
		}
		hdd.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

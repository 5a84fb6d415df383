package autodesign

import (
	"encoding/json"
	"errors"
	"net/http"

	"HDDPull/internal/calc/hdd"
)

type Handler struct {
	Calculator *hdd.Calculator
}

func (h *Handler) Pipe(w http.ResponseWriter, r *http.Request) {
	var input PipeAutoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	calc := h.Calculator
	if calc == nil {
		calc = hdd.Default()
	}
	res, err := Pipe(calc, input)
	if err != nil {
		var verr *hdd.ValidationError
		if errors.As(err, &verr) {
			hdd.RespondError(w, err)
			return
		}
		// Nothing in the catalog passes; still show what was tried.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(res)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

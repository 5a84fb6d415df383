package hdd

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"go.uber.org/zap"
)

type Request struct {
	Pipe PipeParams     `json:"pipe"`
	Path BorePathParams `json:"path"`
}

type Response struct {
	Result  CalculationResult `json:"result"`
	Profile []ProfilePoint    `json:"profile"`
}

type ProfileRequest struct {
	TotalLengthM  float64 `json:"total_length_m"`
	DepthM        float64 `json:"depth_m"`
	EntryAngleDeg float64 `json:"entry_angle_deg"`
	ExitAngleDeg  float64 `json:"exit_angle_deg"`
}

func (p ProfileRequest) Validate() error {
	verr := &ValidationError{}
	if !finite(p.TotalLengthM) || p.TotalLengthM <= 0 {
		verr.add("total_length_m", "must be positive")
	}
	if !finite(p.DepthM) {
		verr.add("depth_m", "must be a finite number")
	}
	if !finite(p.EntryAngleDeg) || p.EntryAngleDeg < 0 || p.EntryAngleDeg > 90 {
		verr.add("entry_angle_deg", "must be between 0 and 90")
	}
	if !finite(p.ExitAngleDeg) || p.ExitAngleDeg < 0 || p.ExitAngleDeg > 90 {
		verr.add("exit_angle_deg", "must be between 0 and 90")
	}
	return verr.orNil()
}

type SoilOption struct {
	Type     SoilType      `json:"type"`
	Friction FrictionRange `json:"friction"`
}

type Catalog struct {
	SDR       []float64      `json:"sdr"`
	Materials []Material     `json:"materials"`
	Soils     []SoilOption   `json:"soils"`
	Crossings []CrossingType `json:"crossings"`
	Constants Constants      `json:"constants"`
}

type Handler struct {
	Calculator *Calculator
	Log        *zap.Logger
}

func (h *Handler) calculator() *Calculator {
	if h.Calculator == nil {
		return defaultCalculator
	}
	return h.Calculator
}

func (h *Handler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

// Analyze runs the calculation and the chart profile for one request.
func Analyze(calc *Calculator, req Request) (Response, error) {
	res, err := calc.Compute(req.Pipe, req.Path)
	if err != nil {
		return Response{}, err
	}
	p := req.Path
	return Response{
		Result:  res,
		Profile: slices.Collect(GeneratePathProfile(p.TotalLengthM, p.DepthM, p.EntryAngleDeg, p.ExitAngleDeg)),
	}, nil
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Analyze(h.calculator(), req)
	if err != nil {
		h.logger().Debug("hdd calc rejected", zap.Error(err))
		RespondError(w, err)
		return
	}
	writeJSON(w, h.logger(), res)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		RespondError(w, err)
		return
	}
	writeJSON(w, h.logger(), slices.Collect(GeneratePathProfile(req.TotalLengthM, req.DepthM, req.EntryAngleDeg, req.ExitAngleDeg)))
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	soils := make([]SoilOption, 0, len(SoilTypes))
	for _, s := range SoilTypes {
		soils = append(soils, SoilOption{Type: s, Friction: SuggestFriction(s)})
	}
	writeJSON(w, h.logger(), Catalog{
		SDR:       SDRCatalog,
		Materials: Materials,
		Soils:     soils,
		Crossings: CrossingTypes,
		Constants: h.calculator().Constants(),
	})
}

// RespondError writes validation failures as a 400 JSON body listing the
// offending fields, and anything else as a plain 400.
func RespondError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(struct {
			Error  string       `json:"error"`
			Fields []FieldError `json:"fields"`
		}{Error: "invalid input", Fields: verr.Fields})
		return
	}
	http.Error(w, "Calculation error", http.StatusBadRequest)
}

// writeJSON answers 500 when v cannot be encoded.
func writeJSON(w http.ResponseWriter, log *zap.Logger, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error("encode response", zap.Error(err))
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(append(body, '\n'))
}

package report

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"HDDPull/internal/advisor"
	"HDDPull/internal/calc/hdd"

	"go.uber.org/zap"
)

type Input struct {
	Project         string             `json:"project"`
	Author          string             `json:"author"`
	Title           string             `json:"title"`
	Notes           string             `json:"notes"`
	Pipe            hdd.PipeParams     `json:"pipe"`
	Path            hdd.BorePathParams `json:"path"`
	IncludeAdvisory bool               `json:"include_advisory"`
}

type Advisor interface {
	Advise(ctx context.Context, req hdd.Request, res hdd.CalculationResult) (advisor.Advice, error)
}

type Handler struct {
	Calculator *hdd.Calculator
	Advisor    Advisor
	Log        *zap.Logger
	Now        func() time.Time
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "HDD Pullback Report"
	}
	log := h.Log
	if log == nil {
		log = zap.NewNop()
	}
	calc := h.Calculator
	if calc == nil {
		calc = hdd.Default()
	}

	req := hdd.Request{Pipe: input.Pipe, Path: input.Path}
	res, err := calc.Compute(req.Pipe, req.Path)
	if err != nil {
		hdd.RespondError(w, err)
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	doc := Document{
		Title:   input.Title,
		Project: input.Project,
		Author:  input.Author,
		Notes:   input.Notes,
		Date:    now(),
		Input:   req,
		Result:  res,
		Profile: slices.Collect(hdd.GeneratePathProfile(req.Path.TotalLengthM, req.Path.DepthM, req.Path.EntryAngleDeg, req.Path.ExitAngleDeg)),
	}
	// The report is still useful without the advisory section.
	if input.IncludeAdvisory && h.Advisor != nil {
		advice, err := h.Advisor.Advise(r.Context(), req, res)
		if err != nil {
			log.Warn("report advisory skipped", zap.Error(err))
		} else {
			doc.Advisory = advice.Markdown
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"hdd-report.pdf\"")
	if err := Render(w, doc); err != nil {
		log.Error("render report", zap.Error(err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

package importer

import (
	"encoding/json"
	"net/http"

	"HDDPull/internal/calc/hdd"

	"go.uber.org/zap"
)

const maxUpload = 8 << 20

type Handler struct {
	Calculator *hdd.Calculator
	Log        *zap.Logger
}

type ImportedRow struct {
	Line   int                   `json:"line"`
	Name   string                `json:"name"`
	Input  hdd.Request           `json:"input"`
	Result hdd.CalculationResult `json:"result"`
}

type PullImportResult struct {
	Count   int           `json:"count"`
	Results []ImportedRow `json:"results"`
	Skipped []RowError    `json:"skipped"`
}

type ExportItem struct {
	Name string             `json:"name"`
	Pipe hdd.PipeParams     `json:"pipe"`
	Path hdd.BorePathParams `json:"path"`
}

type ExportInput struct {
	Items []ExportItem `json:"items"`
}

func (h *Handler) calculator() *hdd.Calculator {
	if h.Calculator == nil {
		return hdd.Default()
	}
	return h.Calculator
}

func (h *Handler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

// Import evaluates every scenario row of an uploaded workbook.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, skipped, err := ParseWorkbook(file)
	if err != nil {
		h.logger().Debug("import rejected", zap.Error(err))
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}

	out := PullImportResult{Results: []ImportedRow{}, Skipped: skipped}
	if out.Skipped == nil {
		out.Skipped = []RowError{}
	}
	calc := h.calculator()
	for _, row := range rows {
		res, err := calc.Compute(row.Request.Pipe, row.Request.Path)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Line: row.Line, Error: err.Error()})
			continue
		}
		out.Results = append(out.Results, ImportedRow{Line: row.Line, Name: row.Name, Input: row.Request, Result: res})
	}
	out.Count = len(out.Results)

	h.logger().Info("workbook imported", zap.Int("rows", out.Count), zap.Int("skipped", len(out.Skipped)))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Export computes the given scenarios and returns them as an xlsx workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input ExportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(input.Items) == 0 {
		http.Error(w, "No items", http.StatusBadRequest)
		return
	}

	calc := h.calculator()
	rows := make([]ExportRow, 0, len(input.Items))
	for _, it := range input.Items {
		res, err := calc.Compute(it.Pipe, it.Path)
		if err != nil {
			hdd.RespondError(w, err)
			return
		}
		rows = append(rows, ExportRow{Name: it.Name, Request: hdd.Request{Pipe: it.Pipe, Path: it.Path}, Result: res})
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"hdd-pullback.xlsx\"")
	if err := WriteWorkbook(w, rows); err != nil {
		h.logger().Error("export workbook", zap.Error(err))
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}

package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"HDDPull/internal/calc/hdd"

	"github.com/xuri/excelize/v2"
)

// Column layout shared by import and export. Columns after exit angle are
// optional; blanks fall back to the defaults below.
var inputHeader = []string{
	"name", "outer_diameter_mm", "sdr", "total_length_m", "depth_m", "entry_angle_deg", "exit_angle_deg",
	"soil_type", "soil_friction", "mud_density_kg_m3", "viscosity_cp", "yield_strength_mpa", "material", "crossing_type",
}

var resultHeader = []string{
	"pull_force_kn", "tensile_stress_mpa", "sf_tensile", "sf_collapse", "is_safe",
	"borehole_mm", "rig_pullback_t", "pipe_weight_mud_kg_m", "warnings",
}

const (
	defaultMudDensity = 1150.0
	defaultViscosity  = 45.0
	requiredColumns   = 7
)

type Row struct {
	Line    int         `json:"line"`
	Name    string      `json:"name"`
	Request hdd.Request `json:"input"`
}

type RowError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// ParseWorkbook reads scenarios from the first sheet. The first row is a
// header. Rows that cannot be parsed are reported, not fatal.
func ParseWorkbook(r io.Reader) ([]Row, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("empty sheet")
	}

	var out []Row
	var bad []RowError
	for i := 1; i < len(rows); i++ {
		line := i + 1
		if blank(rows[i]) {
			continue
		}
		req, err := parseRow(rows[i])
		if err != nil {
			bad = append(bad, RowError{Line: line, Error: err.Error()})
			continue
		}
		out = append(out, Row{Line: line, Name: strings.TrimSpace(rows[i][0]), Request: req})
	}
	return out, bad, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string) (hdd.Request, error) {
	if len(row) < requiredColumns {
		return hdd.Request{}, fmt.Errorf("need at least %d columns, got %d", requiredColumns, len(row))
	}
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	var err error
	num := func(i int, def float64) float64 {
		if err != nil {
			return 0
		}
		s := cell(i)
		if s == "" {
			if def < 0 {
				err = fmt.Errorf("%s is required", inputHeader[i])
			}
			return def
		}
		v, perr := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if perr != nil {
			err = fmt.Errorf("%s: %q is not a number", inputHeader[i], s)
		}
		return v
	}

	soil := hdd.SoilType(cell(7))
	material := hdd.Material(cell(12))
	if material == "" {
		material = hdd.MaterialPE100
	}
	req := hdd.Request{
		Pipe: hdd.PipeParams{
			OuterDiameterMM:  num(1, -1),
			SDR:              num(2, -1),
			Material:         material,
			YieldStrengthMPa: num(11, hdd.TypicalYield(material)),
		},
		Path: hdd.BorePathParams{
			TotalLengthM:   num(3, -1),
			DepthM:         num(4, -1),
			EntryAngleDeg:  num(5, -1),
			ExitAngleDeg:   num(6, -1),
			SoilType:       soil,
			SoilFriction:   num(8, hdd.SuggestFriction(soil).Suggested),
			MudDensityKgM3: num(9, defaultMudDensity),
			ViscosityCP:    num(10, defaultViscosity),
			CrossingType:   hdd.CrossingType(cell(13)),
		},
	}
	return req, err
}

type ExportRow struct {
	Name    string
	Request hdd.Request
	Result  hdd.CalculationResult
}

// WriteWorkbook writes one sheet whose leading columns re-import as input.
func WriteWorkbook(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(inputHeader)+len(resultHeader))
	for _, h := range inputHeader {
		header = append(header, h)
	}
	for _, h := range resultHeader {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return err
	}

	for i, r := range rows {
		p, b, res := r.Request.Pipe, r.Request.Path, r.Result
		values := []interface{}{
			r.Name, p.OuterDiameterMM, p.SDR, b.TotalLengthM, b.DepthM, b.EntryAngleDeg, b.ExitAngleDeg,
			string(b.SoilType), b.SoilFriction, b.MudDensityKgM3, b.ViscosityCP, p.YieldStrengthMPa, string(p.Material), string(b.CrossingType),
			round(res.EstimatedPullForceKN, 2), round(res.TensileStressMPa, 3), round(res.SafetyFactorTensile, 2), round(res.SafetyFactorCollapse, 2),
			res.IsSafe, round(res.RecommendedBoreholeDiameterMM, 1), round(res.RequiredRigPullbackT, 1), round(res.PipeWeightMudKgM, 2),
			strings.Join(res.Warnings, " | "),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func round(v float64, places int) float64 {
	s := strconv.FormatFloat(v, 'f', places, 64)
	r, _ := strconv.ParseFloat(s, 64)
	return r
}

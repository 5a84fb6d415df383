package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"HDDPull/internal/calc/hdd"

	"github.com/phpdave11/gofpdf"
)

type Document struct {
	Title    string
	Project  string
	Author   string
	Notes    string
	Advisory string
	Date     time.Time
	Input    hdd.Request
	Result   hdd.CalculationResult
	Profile  []hdd.ProfilePoint
}

const (
	margin     = 15.0
	pageWidth  = 210.0 - 2*margin
	labelWidth = 95.0
	rowHeight  = 6.0
	chartH     = 55.0
)

// Render writes an A4 pullback report.
func Render(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(doc.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", doc.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", doc.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", doc.Date.Format("2006-01-02")))
	pdf.Ln(10)

	p, b, r := doc.Input.Pipe, doc.Input.Path, doc.Result
	section(pdf, "Input")
	table(pdf, tr, [][2]string{
		{"Pipe", fmt.Sprintf("%s, OD %.0f mm, SDR %g", p.Material, p.OuterDiameterMM, p.SDR)},
		{"Yield strength", fmt.Sprintf("%.1f MPa", p.YieldStrengthMPa)},
		{"Bore length / depth", fmt.Sprintf("%.1f m / %.1f m", b.TotalLengthM, b.DepthM)},
		{"Entry / exit angle", fmt.Sprintf("%.1f deg / %.1f deg", b.EntryAngleDeg, b.ExitAngleDeg)},
		{"Soil", soilLabel(b)},
		{"Drilling fluid", fmt.Sprintf("%.0f kg/m3, %.0f cP", b.MudDensityKgM3, b.ViscosityCP)},
	})

	section(pdf, "Results")
	table(pdf, tr, [][2]string{
		{"Estimated pullback force", fmt.Sprintf("%.2f kN", r.EstimatedPullForceKN)},
		{"Tensile stress", fmt.Sprintf("%.3f MPa (allowable %.1f)", r.TensileStressMPa, r.AllowableStressMPa)},
		{"Safety factor, tensile", fmt.Sprintf("%.2f", r.SafetyFactorTensile)},
		{"Safety factor, collapse", fmt.Sprintf("%.2f", r.SafetyFactorCollapse)},
		{"Status", status(r.IsSafe)},
		{"Pipe weight air / in mud", fmt.Sprintf("%.2f / %.2f kg/m", r.PipeWeightAirKgM, r.PipeWeightMudKgM)},
		{"Bend radius", fmt.Sprintf("%.0f m", r.BendingRadiusM)},
		{"Borehole diameter", fmt.Sprintf("%.0f mm", r.RecommendedBoreholeDiameterMM)},
		{"Rig pullback capacity", fmt.Sprintf("%.1f t", r.RequiredRigPullbackT)},
	})

	s := r.Segments
	section(pdf, "Tension along the path")
	table(pdf, tr, [][2]string{
		{"A: pipe on surface", fmt.Sprintf("%.2f kN", s.TensionAKN)},
		{fmt.Sprintf("B: exit arc (%.1f m)", s.ExitArcM), fmt.Sprintf("%.2f kN", s.TensionBKN)},
		{fmt.Sprintf("C: bottom (%.1f m)", s.BottomM), fmt.Sprintf("%.2f kN", s.TensionCKN)},
		{fmt.Sprintf("D: entry arc (%.1f m)", s.EntryArcM), fmt.Sprintf("%.2f kN", s.TensionDKN)},
		{"Fluid drag", fmt.Sprintf("%.2f kN", r.FluidDragKN)},
	})

	if len(r.Warnings) > 0 {
		section(pdf, "Warnings")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(160, 30, 30)
		for _, msg := range r.Warnings {
			pdf.MultiCell(0, 5, tr("- "+msg), "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	if len(doc.Profile) > 1 {
		section(pdf, "Bore profile")
		chart(pdf, tr, doc.Profile)
	}

	if notes := strings.TrimSpace(doc.Notes); notes != "" {
		section(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(notes), "", "L", false)
	}
	if adv := strings.TrimSpace(doc.Advisory); adv != "" {
		section(pdf, "Engineering advisory")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(adv), "", "L", false)
	}

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}

func table(pdf *gofpdf.Fpdf, tr func(string) string, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for i, row := range rows {
		fill := i%2 == 0
		pdf.SetFillColor(242, 242, 242)
		pdf.CellFormat(labelWidth, rowHeight, tr(row[0]), "", 0, "L", fill, 0, "")
		pdf.CellFormat(pageWidth-labelWidth, rowHeight, tr(row[1]), "", 1, "L", fill, 0, "")
	}
}

// chart draws the profile scaled into a box with the surface at the top edge.
func chart(pdf *gofpdf.Fpdf, tr func(string) string, pts []hdd.ProfilePoint) {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+chartH+10 > pageH-margin {
		pdf.AddPage()
	}
	x0, y0 := margin, pdf.GetY()+2

	maxX, maxD := 0.0, 0.0
	for _, pt := range pts {
		maxX = math.Max(maxX, pt.XM)
		maxD = math.Max(maxD, -pt.DepthM)
	}
	if maxX <= 0 {
		maxX = 1
	}
	if maxD <= 0 {
		maxD = 1
	}
	sx := pageWidth / maxX
	sy := (chartH - 8) / maxD

	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x0, y0, pageWidth, chartH, "D")
	pdf.SetDrawColor(120, 90, 40)
	pdf.Line(x0, y0+4, x0+pageWidth, y0+4)

	pdf.SetDrawColor(20, 70, 160)
	pdf.SetLineWidth(0.6)
	pdf.SetFont("Helvetica", "", 8)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		pdf.Line(x0+a.XM*sx, y0+4-a.DepthM*sy, x0+b.XM*sx, y0+4-b.DepthM*sy)
	}
	for _, pt := range pts {
		if pt.Label == "" {
			continue
		}
		x, y := x0+pt.XM*sx, y0+4-pt.DepthM*sy
		pdf.Circle(x, y, 0.8, "F")
		pdf.Text(math.Min(x+1, x0+pageWidth-18), y+4, tr(fmt.Sprintf("%s %.1f m", pt.Label, pt.DepthM)))
	}
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetY(y0 + chartH + 4)
}

func soilLabel(b hdd.BorePathParams) string {
	if b.SoilType == "" {
		return fmt.Sprintf("friction %.2f", b.SoilFriction)
	}
	return fmt.Sprintf("%s, friction %.2f", b.SoilType, b.SoilFriction)
}

func status(safe bool) string {
	if safe {
		return "SAFE"
	}
	return "NOT SAFE"
}

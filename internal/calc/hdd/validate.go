package hdd

import (
	"fmt"
	"math"
	"strings"
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every input field that falls outside the physical
// domain of the method.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return fmt.Sprintf("invalid input: %s", strings.Join(parts, "; "))
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (p PipeParams) Validate() error {
	verr := &ValidationError{}
	if !finite(p.OuterDiameterMM) || p.OuterDiameterMM <= 0 {
		verr.add("outer_diameter_mm", "must be positive")
	}
	if !finite(p.SDR) || p.SDR <= 1 {
		verr.add("sdr", "must be greater than 1")
	}
	if !finite(p.YieldStrengthMPa) || p.YieldStrengthMPa <= 0 {
		verr.add("yield_strength_mpa", "must be positive")
	}
	switch p.Material {
	case "", MaterialPE100, MaterialPE80:
	default:
		verr.add("material", fmt.Sprintf("unknown grade %q", p.Material))
	}
	return verr.orNil()
}

func (b BorePathParams) Validate() error {
	verr := &ValidationError{}
	if !finite(b.TotalLengthM) || b.TotalLengthM <= 0 {
		verr.add("total_length_m", "must be positive")
	}
	if !finite(b.DepthM) || b.DepthM < 0 {
		verr.add("depth_m", "must not be negative")
	}
	if !finite(b.EntryAngleDeg) || b.EntryAngleDeg < 0 || b.EntryAngleDeg > 90 {
		verr.add("entry_angle_deg", "must be between 0 and 90")
	}
	if !finite(b.ExitAngleDeg) || b.ExitAngleDeg < 0 || b.ExitAngleDeg > 90 {
		verr.add("exit_angle_deg", "must be between 0 and 90")
	}
	if !finite(b.SoilFriction) || b.SoilFriction < 0 {
		verr.add("soil_friction", "must not be negative")
	}
	if !finite(b.MudDensityKgM3) || b.MudDensityKgM3 <= 0 {
		verr.add("mud_density_kg_m3", "must be positive")
	}
	if !finite(b.ViscosityCP) || b.ViscosityCP < 0 {
		verr.add("viscosity_cp", "must not be negative")
	}
	switch b.CrossingType {
	case "", CrossingStandard, CrossingRiver, CrossingRoad:
	default:
		verr.add("crossing_type", fmt.Sprintf("unknown crossing %q", b.CrossingType))
	}
	switch b.SoilType {
	case "", SoilClay, SoilSand, SoilGravel, SoilRock:
	default:
		verr.add("soil_type", fmt.Sprintf("unknown soil %q", b.SoilType))
	}
	return verr.orNil()
}

func validate(pipe PipeParams, path BorePathParams) error {
	verr := &ValidationError{}
	if err := pipe.Validate(); err != nil {
		verr.Fields = append(verr.Fields, err.(*ValidationError).Fields...)
	}
	if err := path.Validate(); err != nil {
		verr.Fields = append(verr.Fields, err.(*ValidationError).Fields...)
	}
	return verr.orNil()
}

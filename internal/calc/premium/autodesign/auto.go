package autodesign

import (
	"fmt"

	"HDDPull/internal/calc/hdd"
)

type PipeAutoInput struct {
	OuterDiameterMM  float64            `json:"outer_diameter_mm"`
	Material         hdd.Material       `json:"material"`
	YieldStrengthMPa float64            `json:"yield_strength_mpa"`
	Path             hdd.BorePathParams `json:"path"`
}

type Candidate struct {
	SDR                  float64 `json:"sdr"`
	SafetyFactorTensile  float64 `json:"safety_factor_tensile"`
	SafetyFactorCollapse float64 `json:"safety_factor_collapse"`
	IsSafe               bool    `json:"is_safe"`
}

type PipeAutoResult struct {
	SDR        float64               `json:"sdr"`
	Result     hdd.CalculationResult `json:"result"`
	Candidates []Candidate           `json:"candidates"`
	Notes      string                `json:"notes"`
}

// Pipe picks the thinnest catalog wall (highest SDR) whose pullback passes
// both safety checks. An omitted (zero) yield defaults to the typical value
// of the grade; a negative one is rejected by validation.
func Pipe(calc *hdd.Calculator, in PipeAutoInput) (PipeAutoResult, error) {
	if in.YieldStrengthMPa == 0 {
		in.YieldStrengthMPa = hdd.TypicalYield(in.Material)
	}
	out := PipeAutoResult{}
	for i := len(hdd.SDRCatalog) - 1; i >= 0; i-- {
		sdr := hdd.SDRCatalog[i]
		pipe := hdd.PipeParams{
			OuterDiameterMM:  in.OuterDiameterMM,
			SDR:              sdr,
			Material:         in.Material,
			YieldStrengthMPa: in.YieldStrengthMPa,
		}
		res, err := calc.Compute(pipe, in.Path)
		if err != nil {
			return PipeAutoResult{}, err
		}
		out.Candidates = append(out.Candidates, Candidate{
			SDR:                  sdr,
			SafetyFactorTensile:  res.SafetyFactorTensile,
			SafetyFactorCollapse: res.SafetyFactorCollapse,
			IsSafe:               res.IsSafe,
		})
		if res.IsSafe {
			out.SDR = sdr
			out.Result = res
			out.Notes = fmt.Sprintf("SDR %g is the thinnest standard wall that passes both checks.", sdr)
			return out, nil
		}
	}
	return out, fmt.Errorf("no standard SDR is safe for this crossing")
}

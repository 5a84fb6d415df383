package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"HDDPull/internal/calc/hdd"
	"HDDPull/internal/calc/premium/recommend"
)

const usage = "Commands:\n" +
	"/pull OD SDR LENGTH DEPTH [ENTRY EXIT FRICTION MUD VISC]\n" +
	"  e.g. /pull 315 11 200 10 12 10 0.25 1150 45\n" +
	"/soil TYPE (Clay, Sand, Gravel, Rock)"

// Optional /pull arguments, in order.
var pullDefaults = []float64{12, 10, 0.3, 1150, 45}

// reply answers one chat message. Unknown text gets the usage help.
func reply(calc *hdd.Calculator, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return usage
	}
	// Commands in groups arrive as /pull@botname.
	cmd, _, _ := strings.Cut(fields[0], "@")
	switch cmd {
	case "/pull":
		req, err := parsePull(fields[1:])
		if err != nil {
			return err.Error() + "\n\n" + usage
		}
		res, err := calc.Compute(req.Pipe, req.Path)
		if err != nil {
			return "Invalid input: " + err.Error()
		}
		return summary(res)
	case "/soil":
		if len(fields) < 2 {
			return usage
		}
		return soil(fields[1])
	default:
		return usage
	}
}

func parsePull(args []string) (hdd.Request, error) {
	if len(args) < 4 {
		return hdd.Request{}, errors.New("need at least OD, SDR, LENGTH and DEPTH")
	}
	if len(args) > 4+len(pullDefaults) {
		return hdd.Request{}, fmt.Errorf("too many arguments: %d", len(args))
	}
	v := make([]float64, 4+len(pullDefaults))
	copy(v[4:], pullDefaults)
	for i, a := range args {
		f, err := strconv.ParseFloat(strings.ReplaceAll(a, ",", "."), 64)
		if err != nil {
			return hdd.Request{}, fmt.Errorf("argument %d: %q is not a number", i+1, a)
		}
		v[i] = f
	}
	return hdd.Request{
		Pipe: hdd.PipeParams{
			OuterDiameterMM:  v[0],
			SDR:              v[1],
			Material:         hdd.MaterialPE100,
			YieldStrengthMPa: hdd.TypicalYield(hdd.MaterialPE100),
		},
		Path: hdd.BorePathParams{
			TotalLengthM:   v[2],
			DepthM:         v[3],
			EntryAngleDeg:  v[4],
			ExitAngleDeg:   v[5],
			SoilFriction:   v[6],
			MudDensityKgM3: v[7],
			ViscosityCP:    v[8],
		},
	}, nil
}

func summary(res hdd.CalculationResult) string {
	var sb strings.Builder
	status := "SAFE"
	if !res.IsSafe {
		status = "NOT SAFE"
	}
	fmt.Fprintf(&sb, "%s\n", status)
	fmt.Fprintf(&sb, "Pullback force: %.1f kN\n", res.EstimatedPullForceKN)
	fmt.Fprintf(&sb, "Tensile stress: %.2f MPa\n", res.TensileStressMPa)
	fmt.Fprintf(&sb, "SF tensile: %.2f, SF collapse: %.2f\n", res.SafetyFactorTensile, res.SafetyFactorCollapse)
	fmt.Fprintf(&sb, "Weight in mud: %.2f kg/m\n", res.PipeWeightMudKgM)
	fmt.Fprintf(&sb, "Borehole: %.0f mm, rig: %.1f t", res.RecommendedBoreholeDiameterMM, res.RequiredRigPullbackT)
	for _, w := range res.Warnings {
		sb.WriteString("\n! " + w)
	}
	return sb.String()
}

func soil(name string) string {
	for _, s := range hdd.SoilTypes {
		if strings.EqualFold(name, string(s)) {
			r, err := recommend.SoilFriction(recommend.SoilRecommendInput{SoilType: s})
			if err != nil {
				return err.Error()
			}
			return fmt.Sprintf("%s: friction %.2f (range %.2f-%.2f)\n%s", s, r.SoilFriction, r.Range.Min, r.Range.Max, strings.Join(r.Notes, "\n"))
		}
	}
	return fmt.Sprintf("Unknown soil %q. Use Clay, Sand, Gravel or Rock.", name)
}

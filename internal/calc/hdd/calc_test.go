package hdd

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referencePipe() PipeParams {
	return PipeParams{OuterDiameterMM: 315, SDR: 11, Material: MaterialPE100, YieldStrengthMPa: 24}
}

func referencePath() BorePathParams {
	return BorePathParams{
		TotalLengthM:   200,
		DepthM:         10,
		EntryAngleDeg:  12,
		ExitAngleDeg:   10,
		SoilFriction:   0.25,
		MudDensityKgM3: 1150,
		ViscosityCP:    45,
		CrossingType:   CrossingStandard,
		SoilType:       SoilClay,
	}
}

func TestComputePullAnalysis_ReferenceCase(t *testing.T) {
	res, err := ComputePullAnalysis(referencePipe(), referencePath())
	require.NoError(t, err)

	assert.InEpsilon(t, 80.8, res.EstimatedPullForceKN, 0.05)
	assert.InEpsilon(t, 3.1, res.TensileStressMPa, 0.05)
	assert.InEpsilon(t, 3.8, res.SafetyFactorTensile, 0.05)
	assert.InEpsilon(t, 12.4, res.SafetyFactorCollapse, 0.05)
	assert.InDelta(t, 472.5, res.RecommendedBoreholeDiameterMM, 1e-9)
	assert.InEpsilon(t, 16.5, res.RequiredRigPullbackT, 0.05)
	assert.InDelta(t, 200, res.BendingRadiusM, 1e-9)
	assert.True(t, res.IsSafe)
	assert.Empty(t, res.Warnings)
	assert.NotNil(t, res.Warnings, "warnings encode as [] rather than null")

	assert.InDelta(t, 45.0, res.FluidDragKN, 1e-9)
	assert.Less(t, res.PipeWeightMudKgM, 0.0, "empty PE pipe floats in 1150 kg/m3 mud")
	assert.True(t, res.Segments.DepthSufficient)
}

func TestComputePullAnalysis_SegmentTensionsNonDecreasing(t *testing.T) {
	res, err := ComputePullAnalysis(referencePipe(), referencePath())
	require.NoError(t, err)

	s := res.Segments
	assert.LessOrEqual(t, s.TensionAKN, s.TensionBKN)
	assert.LessOrEqual(t, s.TensionBKN, s.TensionCKN)
	assert.LessOrEqual(t, s.TensionCKN, s.TensionDKN)
	assert.InDelta(t, s.TensionDKN+res.FluidDragKN, res.EstimatedPullForceKN, 1e-9)
	assert.InDelta(t, 200-s.EntryArcM-s.ExitArcM, s.BottomM, 1e-9)
}

func TestComputePullAnalysis_Deterministic(t *testing.T) {
	first, err := ComputePullAnalysis(referencePipe(), referencePath())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ComputePullAnalysis(referencePipe(), referencePath())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputePullAnalysis_MonotonicInLength(t *testing.T) {
	path := referencePath()
	prev := 0.0
	for length := 20.0; length <= 2000; length += 20 {
		path.TotalLengthM = length
		res, err := ComputePullAnalysis(referencePipe(), path)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.EstimatedPullForceKN, prev, "length %v", length)
		prev = res.EstimatedPullForceKN
	}
}

func TestComputePullAnalysis_MonotonicInFriction(t *testing.T) {
	path := referencePath()
	prev := 0.0
	for mu := 0.0; mu <= 0.8; mu += 0.05 {
		path.SoilFriction = mu
		res, err := ComputePullAnalysis(referencePipe(), path)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.EstimatedPullForceKN, prev, "friction %v", mu)
		prev = res.EstimatedPullForceKN
	}
}

func TestComputePullAnalysis_CollapseFactorFallsWithSDR(t *testing.T) {
	pipe := referencePipe()
	prev := math.Inf(1)
	for _, sdr := range SDRCatalog {
		pipe.SDR = sdr
		res, err := ComputePullAnalysis(pipe, referencePath())
		require.NoError(t, err)
		assert.Less(t, res.SafetyFactorCollapse, prev, "sdr %v", sdr)
		prev = res.SafetyFactorCollapse
	}
}

func TestComputePullAnalysis_ZeroFrictionLeavesFluidDrag(t *testing.T) {
	path := referencePath()
	path.SoilFriction = 0
	res, err := ComputePullAnalysis(referencePipe(), path)
	require.NoError(t, err)

	assert.Zero(t, res.Segments.TensionAKN)
	assert.Zero(t, res.Segments.TensionDKN)
	assert.InDelta(t, res.FluidDragKN, res.EstimatedPullForceKN, 1e-12)
}

func TestComputePullAnalysis_BuoyancySign(t *testing.T) {
	path := referencePath()

	path.MudDensityKgM3 = 1150
	floating, err := ComputePullAnalysis(referencePipe(), path)
	require.NoError(t, err)
	assert.Less(t, floating.PipeWeightMudKgM, 0.0)

	path.MudDensityKgM3 = 100
	sinking, err := ComputePullAnalysis(referencePipe(), path)
	require.NoError(t, err)
	assert.Greater(t, sinking.PipeWeightMudKgM, 0.0)
	assert.Equal(t, floating.PipeWeightAirKgM, sinking.PipeWeightAirKgM)
}

func TestComputePullAnalysis_WarningOrder(t *testing.T) {
	pipe := PipeParams{OuterDiameterMM: 315, SDR: 41, YieldStrengthMPa: 2}
	path := referencePath()
	path.DepthM = 2

	res, err := ComputePullAnalysis(pipe, path)
	require.NoError(t, err)

	require.Len(t, res.Warnings, 3)
	assert.Contains(t, res.Warnings[0], "Tensile safety factor")
	assert.Contains(t, res.Warnings[1], "Collapse safety factor")
	assert.Contains(t, res.Warnings[2], "Geometry warning")
	assert.False(t, res.IsSafe)
	assert.False(t, res.Segments.DepthSufficient)
	assert.Greater(t, res.Segments.BottomM, 0.0, "calculation proceeds despite the geometry warning")
}

func TestComputePullAnalysis_SafetyClassification(t *testing.T) {
	pipe := referencePipe()
	for _, yield := range []float64{1, 5, 10, 15, 20, 24, 40} {
		pipe.YieldStrengthMPa = yield
		res, err := ComputePullAnalysis(pipe, referencePath())
		require.NoError(t, err)

		want := res.SafetyFactorTensile >= 1.5 && res.SafetyFactorCollapse >= 1.5
		assert.Equal(t, want, res.IsSafe, "yield %v", yield)
		if res.SafetyFactorTensile < 1.5 {
			assert.Contains(t, res.Warnings[0], "Tensile")
		}
	}
}

func TestComputePullAnalysis_SurfaceDepthStaysFinite(t *testing.T) {
	path := referencePath()
	path.DepthM = 0
	res, err := ComputePullAnalysis(referencePipe(), path)
	require.NoError(t, err)

	assert.False(t, math.IsInf(res.SafetyFactorCollapse, 0))
	assert.Greater(t, res.SafetyFactorCollapse, 1.5)
	_, err = json.Marshal(res)
	assert.NoError(t, err)
}

func TestComputePullAnalysis_RejectsOutOfDomain(t *testing.T) {
	cases := []struct {
		name  string
		pipe  func(*PipeParams)
		path  func(*BorePathParams)
		field string
	}{
		{"sdr of one", func(p *PipeParams) { p.SDR = 1 }, nil, "sdr"},
		{"zero diameter", func(p *PipeParams) { p.OuterDiameterMM = 0 }, nil, "outer_diameter_mm"},
		{"nan yield", func(p *PipeParams) { p.YieldStrengthMPa = math.NaN() }, nil, "yield_strength_mpa"},
		{"unknown grade", func(p *PipeParams) { p.Material = "PVC" }, nil, "material"},
		{"negative length", nil, func(b *BorePathParams) { b.TotalLengthM = -5 }, "total_length_m"},
		{"negative depth", nil, func(b *BorePathParams) { b.DepthM = -1 }, "depth_m"},
		{"steep entry", nil, func(b *BorePathParams) { b.EntryAngleDeg = 95 }, "entry_angle_deg"},
		{"infinite exit", nil, func(b *BorePathParams) { b.ExitAngleDeg = math.Inf(1) }, "exit_angle_deg"},
		{"negative friction", nil, func(b *BorePathParams) { b.SoilFriction = -0.1 }, "soil_friction"},
		{"no mud", nil, func(b *BorePathParams) { b.MudDensityKgM3 = 0 }, "mud_density_kg_m3"},
		{"negative viscosity", nil, func(b *BorePathParams) { b.ViscosityCP = -1 }, "viscosity_cp"},
		{"unknown soil", nil, func(b *BorePathParams) { b.SoilType = "Peat" }, "soil_type"},
		{"unknown crossing", nil, func(b *BorePathParams) { b.CrossingType = "Rail" }, "crossing_type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pipe, path := referencePipe(), referencePath()
			if tc.pipe != nil {
				tc.pipe(&pipe)
			}
			if tc.path != nil {
				tc.path(&path)
			}
			_, err := ComputePullAnalysis(pipe, path)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tc.field, verr.Fields[0].Field)
		})
	}
}

func fieldNames(fields []FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

func TestComputePullAnalysis_RejectsOverflow(t *testing.T) {
	cases := []struct {
		name  string
		pipe  func(*PipeParams)
		path  func(*BorePathParams)
		field string
	}{
		{"capstan overflow", nil, func(b *BorePathParams) { b.SoilFriction = 500; b.EntryAngleDeg = 90 }, "soil_friction"},
		{"huge diameter", func(p *PipeParams) { p.OuterDiameterMM = 1e160 }, nil, "outer_diameter_mm"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pipe, path := referencePipe(), referencePath()
			if tc.pipe != nil {
				tc.pipe(&pipe)
			}
			if tc.path != nil {
				tc.path(&path)
			}
			res, err := ComputePullAnalysis(pipe, path)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v with pull %v", err, res.EstimatedPullForceKN)
			names := fieldNames(verr.Fields)
			assert.Contains(t, names, tc.field)
			assert.Len(t, names, len(uniq(names)), "each input is reported once")
		})
	}
}

func uniq(in []string) map[string]bool {
	m := map[string]bool{}
	for _, s := range in {
		m[s] = true
	}
	return m
}

func TestComputePullAnalysis_CollapseFloorIsContinuous(t *testing.T) {
	sf := func(depth float64) float64 {
		path := referencePath()
		path.DepthM = depth
		res, err := ComputePullAnalysis(referencePipe(), path)
		require.NoError(t, err)
		return res.SafetyFactorCollapse
	}
	surface, shallow, deep := sf(0), sf(1e-6), sf(1)
	assert.Equal(t, surface, shallow)
	assert.Greater(t, shallow, deep)
}

func TestComputePullAnalysis_CollectsEveryBadField(t *testing.T) {
	_, err := ComputePullAnalysis(PipeParams{}, BorePathParams{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.GreaterOrEqual(t, len(verr.Fields), 5)
	assert.Contains(t, verr.Error(), "sdr must be greater than 1")
}

func TestNewCalculator_OverridesConstants(t *testing.T) {
	c := DefaultConstants()
	c.ReamingRatio = 1.3
	c.MinDesignRadiusM = 300
	calc, err := NewCalculator(c)
	require.NoError(t, err)

	res, err := calc.Compute(referencePipe(), referencePath())
	require.NoError(t, err)
	assert.InDelta(t, 409.5, res.RecommendedBoreholeDiameterMM, 1e-9)
	assert.InDelta(t, 300, res.BendingRadiusM, 1e-9)
}

func TestNewCalculator_RejectsBadConstants(t *testing.T) {
	c := DefaultConstants()
	c.PoissonRatio = 1
	c.Gravity = 0
	_, err := NewCalculator(c)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)
}

func TestSegmentPath_LargePipeRaisesRadius(t *testing.T) {
	pipe := referencePipe()
	pipe.OuterDiameterMM = 6000
	seg := segmentPath(DefaultConstants(), pipe, referencePath())
	assert.InDelta(t, 240, seg.radiusM, 1e-9)

	pipe.OuterDiameterMM = 1200
	seg = segmentPath(DefaultConstants(), pipe, referencePath())
	assert.InDelta(t, 200, seg.radiusM, 1e-9, "practical floor applies below 5 m OD")
}

func TestLevyCollapse(t *testing.T) {
	got := levyCollapse(DefaultConstants(), 11)
	want := 2 * 800 * 0.7 / (1 - 0.45*0.45) / 1000
	assert.InDelta(t, want, got, 1e-12)
}

func TestSuggestFriction(t *testing.T) {
	assert.Equal(t, 0.25, SuggestFriction(SoilClay).Suggested)
	assert.Equal(t, 0.55, SuggestFriction(SoilRock).Suggested)
	assert.Equal(t, 0.3, SuggestFriction("Peat").Suggested)
}

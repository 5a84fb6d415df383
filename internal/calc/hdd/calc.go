// Package hdd estimates pullback force, stress and safety factors for PE pipe
// installed by horizontal directional drilling, following the ASTM F1962
// simplified method.
package hdd

// Calculator runs the method with a fixed set of constants. The zero value
// is not usable; build one with NewCalculator.
type Calculator struct {
	c Constants
}

func NewCalculator(c Constants) (*Calculator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{c: c}, nil
}

func (calc *Calculator) Constants() Constants {
	return calc.c
}

var defaultCalculator = &Calculator{c: DefaultConstants()}

// Default returns the shared calculator built from DefaultConstants.
func Default() *Calculator {
	return defaultCalculator
}

// ComputePullAnalysis runs the method with DefaultConstants.
func ComputePullAnalysis(pipe PipeParams, path BorePathParams) (CalculationResult, error) {
	return defaultCalculator.Compute(pipe, path)
}

// Compute returns a *ValidationError for out-of-domain inputs, including
// finite inputs so extreme that a result field overflows. Risk conditions
// never fail; they are reported in Result.Warnings.
func (calc *Calculator) Compute(pipe PipeParams, path BorePathParams) (CalculationResult, error) {
	if err := validate(pipe, path); err != nil {
		return CalculationResult{}, err
	}
	c := calc.c

	sec := resolvePipe(pipe)
	w := weighPipe(c, pipe, sec, path.MudDensityKgM3)
	seg := segmentPath(c, pipe, path)
	_, dragN := fluidDrag(c, path)

	t := accumulateTension(c, w, seg, path.SoilFriction)
	pullN := t.d + dragN
	pullKN := pullN / 1000.0

	st := evaluateStress(c, pipe, path, sec, pullN)
	eq := recommendEquipment(c, pipe, pullKN)

	res := CalculationResult{
		PipeWeightAirKgM:              w.airNM / c.Gravity,
		PipeWeightMudKgM:              w.netNM / c.Gravity,
		EstimatedPullForceKN:          pullKN,
		TensileStressMPa:              st.tensileMPa,
		BendingRadiusM:                seg.radiusM,
		SafetyFactorTensile:           st.sfTensile,
		SafetyFactorCollapse:          st.sfCollapse,
		IsSafe:                        st.sfTensile >= c.SafetyFactorThreshold && st.sfCollapse >= c.SafetyFactorThreshold,
		Warnings:                      collectWarnings(c, path, seg, st),
		RecommendedBoreholeDiameterMM: eq.boreholeMM,
		RequiredRigPullbackT:          eq.pullbackT,
		WallThicknessMM:               sec.wallThicknessMM,
		InnerDiameterMM:               sec.innerDiameterMM,
		FluidDragKN:                   dragN / 1000.0,
		AllowableStressMPa:            st.allowableMPa,
		CollapsePressureMPa:           st.collapseMPa,
		HydrostaticPressureMPa:        st.hydrostaticMPa,
		Segments: Segments{
			EntryArcM:       seg.entryArcM,
			ExitArcM:        seg.exitArcM,
			BottomM:         seg.bottomM,
			VerticalDropM:   seg.verticalDropM,
			TensionAKN:      t.a / 1000.0,
			TensionBKN:      t.b / 1000.0,
			TensionCKN:      t.c / 1000.0,
			TensionDKN:      t.d / 1000.0,
			DepthSufficient: seg.depthOK,
		},
	}
	if err := checkFinite(res); err != nil {
		return CalculationResult{}, err
	}
	return res, nil
}

package hdd

// resultCheck ties a computed quantity to the inputs that drive it.
type resultCheck struct {
	name   string
	value  float64
	inputs []string
}

var (
	pipeInputs    = []string{"outer_diameter_mm", "sdr"}
	pullInputs    = []string{"outer_diameter_mm", "total_length_m", "soil_friction", "entry_angle_deg", "exit_angle_deg", "mud_density_kg_m3", "viscosity_cp"}
	collapseInput = []string{"sdr", "depth_m", "mud_density_kg_m3"}
)

// checkFinite rejects a result in which finite but extreme inputs overflowed
// to Inf or NaN. Each offending input is reported once.
func checkFinite(res CalculationResult) error {
	s := res.Segments
	checks := []resultCheck{
		{"pipe_weight_air_kg_m", res.PipeWeightAirKgM, pipeInputs},
		{"pipe_weight_mud_kg_m", res.PipeWeightMudKgM, append(pipeInputs, "mud_density_kg_m3")},
		{"wall_thickness_mm", res.WallThicknessMM, pipeInputs},
		{"inner_diameter_mm", res.InnerDiameterMM, pipeInputs},
		{"bending_radius_m", res.BendingRadiusM, []string{"outer_diameter_mm"}},
		{"entry_arc_m", s.EntryArcM, []string{"outer_diameter_mm", "entry_angle_deg"}},
		{"exit_arc_m", s.ExitArcM, []string{"outer_diameter_mm", "exit_angle_deg"}},
		{"bottom_m", s.BottomM, []string{"total_length_m"}},
		{"vertical_drop_m", s.VerticalDropM, []string{"outer_diameter_mm"}},
		{"tension_a_kn", s.TensionAKN, pullInputs},
		{"tension_b_kn", s.TensionBKN, pullInputs},
		{"tension_c_kn", s.TensionCKN, pullInputs},
		{"tension_d_kn", s.TensionDKN, pullInputs},
		{"fluid_drag_kn", res.FluidDragKN, []string{"total_length_m", "viscosity_cp"}},
		{"estimated_pull_force_kn", res.EstimatedPullForceKN, pullInputs},
		{"tensile_stress_mpa", res.TensileStressMPa, pullInputs},
		{"allowable_stress_mpa", res.AllowableStressMPa, []string{"yield_strength_mpa"}},
		{"safety_factor_tensile", res.SafetyFactorTensile, append(pullInputs, "yield_strength_mpa")},
		{"collapse_pressure_mpa", res.CollapsePressureMPa, collapseInput},
		{"hydrostatic_pressure_mpa", res.HydrostaticPressureMPa, collapseInput},
		{"safety_factor_collapse", res.SafetyFactorCollapse, collapseInput},
		{"recommended_borehole_diameter_mm", res.RecommendedBoreholeDiameterMM, []string{"outer_diameter_mm"}},
		{"required_rig_pullback_t", res.RequiredRigPullbackT, pullInputs},
	}

	verr := &ValidationError{}
	seen := map[string]bool{}
	for _, c := range checks {
		if finite(c.value) {
			continue
		}
		for _, in := range c.inputs {
			if seen[in] {
				continue
			}
			seen[in] = true
			verr.add(in, "too large: "+c.name+" is out of numeric range")
		}
	}
	return verr.orNil()
}

package hdd

type Material string

const (
	MaterialPE100 Material = "PE100"
	MaterialPE80  Material = "PE80"
)

type CrossingType string

const (
	CrossingStandard CrossingType = "Standard"
	CrossingRiver    CrossingType = "River"
	CrossingRoad     CrossingType = "Road"
)

type SoilType string

const (
	SoilClay   SoilType = "Clay"
	SoilSand   SoilType = "Sand"
	SoilGravel SoilType = "Gravel"
	SoilRock   SoilType = "Rock"
)

// SDRCatalog lists the standard dimension ratios offered for PE pipe,
// thickest wall first.
var SDRCatalog = []float64{7.4, 9, 11, 13.6, 17, 21, 26, 33, 41}

type PipeParams struct {
	OuterDiameterMM  float64  `json:"outer_diameter_mm"`
	SDR              float64  `json:"sdr"`
	Material         Material `json:"material"`
	YieldStrengthMPa float64  `json:"yield_strength_mpa"`
}

type BorePathParams struct {
	TotalLengthM   float64      `json:"total_length_m"`
	DepthM         float64      `json:"depth_m"`
	EntryAngleDeg  float64      `json:"entry_angle_deg"`
	ExitAngleDeg   float64      `json:"exit_angle_deg"`
	SoilFriction   float64      `json:"soil_friction"`
	MudDensityKgM3 float64      `json:"mud_density_kg_m3"`
	ViscosityCP    float64      `json:"viscosity_cp"`
	CrossingType   CrossingType `json:"crossing_type"`
	SoilType       SoilType     `json:"soil_type"`
}

// Segments exposes the intermediate path lengths and cumulative tensions
// (A: surface, B: first arc, C: bottom, D: last arc).
type Segments struct {
	EntryArcM       float64 `json:"entry_arc_m"`
	ExitArcM        float64 `json:"exit_arc_m"`
	BottomM         float64 `json:"bottom_m"`
	VerticalDropM   float64 `json:"vertical_drop_m"`
	TensionAKN      float64 `json:"tension_a_kn"`
	TensionBKN      float64 `json:"tension_b_kn"`
	TensionCKN      float64 `json:"tension_c_kn"`
	TensionDKN      float64 `json:"tension_d_kn"`
	DepthSufficient bool    `json:"depth_sufficient"`
}

type CalculationResult struct {
	PipeWeightAirKgM              float64  `json:"pipe_weight_air_kg_m"`
	PipeWeightMudKgM              float64  `json:"pipe_weight_mud_kg_m"`
	EstimatedPullForceKN          float64  `json:"estimated_pull_force_kn"`
	TensileStressMPa              float64  `json:"tensile_stress_mpa"`
	BendingRadiusM                float64  `json:"bending_radius_m"`
	SafetyFactorTensile           float64  `json:"safety_factor_tensile"`
	SafetyFactorCollapse          float64  `json:"safety_factor_collapse"`
	IsSafe                        bool     `json:"is_safe"`
	Warnings                      []string `json:"warnings"`
	RecommendedBoreholeDiameterMM float64  `json:"recommended_borehole_diameter_mm"`
	RequiredRigPullbackT          float64  `json:"required_rig_pullback_t"`
	WallThicknessMM               float64  `json:"wall_thickness_mm"`
	InnerDiameterMM               float64  `json:"inner_diameter_mm"`
	FluidDragKN                   float64  `json:"fluid_drag_kn"`
	AllowableStressMPa            float64  `json:"allowable_stress_mpa"`
	CollapsePressureMPa           float64  `json:"collapse_pressure_mpa"`
	HydrostaticPressureMPa        float64  `json:"hydrostatic_pressure_mpa"`
	Segments                      Segments `json:"segments"`
}

type ProfilePoint struct {
	XM     float64 `json:"x_m"`
	DepthM float64 `json:"depth_m"`
	Label  string  `json:"label,omitempty"`
}

package hdd

// Constants holds the empirical values of the ASTM F1962 simplified method.
// Env tags let internal/config override any of them (prefixed with HDD_).
type Constants struct {
	PipeDensityKgM3       float64 `json:"pipe_density_kg_m3" env:"PIPE_DENSITY"`
	Gravity               float64 `json:"gravity" env:"GRAVITY"`
	MinBendRadiusFactor   float64 `json:"min_bend_radius_factor" env:"MIN_BEND_RADIUS_FACTOR"`
	MinDesignRadiusM      float64 `json:"min_design_radius_m" env:"MIN_DESIGN_RADIUS"`
	SurfaceLengthM        float64 `json:"surface_length_m" env:"SURFACE_LENGTH"`
	DragFloorNM           float64 `json:"drag_floor_n_m" env:"DRAG_FLOOR"`
	DragPerCentipoise     float64 `json:"drag_per_centipoise" env:"DRAG_PER_CP"`
	AllowableStressRatio  float64 `json:"allowable_stress_ratio" env:"ALLOWABLE_STRESS_RATIO"`
	ModulusMPa            float64 `json:"modulus_mpa" env:"MODULUS"`
	PoissonRatio          float64 `json:"poisson_ratio" env:"POISSON_RATIO"`
	OvalityFactor         float64 `json:"ovality_factor" env:"OVALITY_FACTOR"`
	SafetyFactorThreshold float64 `json:"safety_factor_threshold" env:"SAFETY_FACTOR_THRESHOLD"`
	ReamingRatio          float64 `json:"reaming_ratio" env:"REAMING_RATIO"`
	RigSafetyMargin       float64 `json:"rig_safety_margin" env:"RIG_SAFETY_MARGIN"`
	Epsilon               float64 `json:"epsilon" env:"EPSILON"`
}

// DefaultConstants returns the HDPE profile: PE100 density, short-term
// installation modulus, 50% yield derating and a 2x rig margin.
func DefaultConstants() Constants {
	return Constants{
		PipeDensityKgM3:       955,
		Gravity:               9.81,
		MinBendRadiusFactor:   40,
		MinDesignRadiusM:      200,
		SurfaceLengthM:        30,
		DragFloorNM:           50,
		DragPerCentipoise:     5,
		AllowableStressRatio:  0.5,
		ModulusMPa:            800,
		PoissonRatio:          0.45,
		OvalityFactor:         0.7,
		SafetyFactorThreshold: 1.5,
		ReamingRatio:          1.5,
		RigSafetyMargin:       2.0,
		Epsilon:               1e-4,
	}
}

// Validate reports whether the constants can drive a calculation.
func (c Constants) Validate() error {
	verr := &ValidationError{}
	positive := func(field string, v float64) {
		if !finite(v) || v <= 0 {
			verr.add(field, "must be a positive number")
		}
	}
	positive("pipe_density_kg_m3", c.PipeDensityKgM3)
	positive("gravity", c.Gravity)
	positive("min_bend_radius_factor", c.MinBendRadiusFactor)
	positive("allowable_stress_ratio", c.AllowableStressRatio)
	positive("modulus_mpa", c.ModulusMPa)
	positive("ovality_factor", c.OvalityFactor)
	positive("safety_factor_threshold", c.SafetyFactorThreshold)
	positive("reaming_ratio", c.ReamingRatio)
	positive("rig_safety_margin", c.RigSafetyMargin)
	positive("epsilon", c.Epsilon)
	if !finite(c.MinDesignRadiusM) || c.MinDesignRadiusM < 0 {
		verr.add("min_design_radius_m", "must not be negative")
	}
	if !finite(c.SurfaceLengthM) || c.SurfaceLengthM < 0 {
		verr.add("surface_length_m", "must not be negative")
	}
	if !finite(c.DragFloorNM) || c.DragFloorNM < 0 {
		verr.add("drag_floor_n_m", "must not be negative")
	}
	if !finite(c.DragPerCentipoise) || c.DragPerCentipoise < 0 {
		verr.add("drag_per_centipoise", "must not be negative")
	}
	if !finite(c.PoissonRatio) || c.PoissonRatio < 0 || c.PoissonRatio >= 1 {
		verr.add("poisson_ratio", "must be in [0, 1)")
	}
	return verr.orNil()
}

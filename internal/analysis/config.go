package analysis

// Config collects the calibration constants of the analysis pipeline. The
// defaults are the values the report quality was tuned against; callers may
// override individual knobs through configuration rather than editing code.
type Config struct {
	// WinProbScale is the steepness of the logistic centipawn-to-probability
	// curve. The default puts a ~300cp advantage around 75-80% win chance.
	WinProbScale float64

	// Classification boundaries, expressed as win-percentage loss. A move
	// whose loss is less than or equal to a boundary gets that label or
	// better.
	BestLoss       float64
	ExcellentLoss  float64
	GoodLoss       float64
	InaccuracyLoss float64
	MistakeLoss    float64

	// CriticalSwing is the win-probability change (0-1) that marks a ply as
	// a turning point.
	CriticalSwing float64

	// Sacrifice and special-label thresholds, in centipawns.
	SacrificeMinValue          int
	BrilliantMaxLoss           float64
	GreatMoveGap               float64
	GreatMoveAdvantage         float64
	GreatMoveTacticalAdvantage float64
	GreatMoveLossThreshold     float64
	AlternativeBadThreshold    float64
	CriticalEvalCeiling        float64
	CriticalGap                float64

	// Accuracy curve coefficients and volatility weighting bounds.
	AccuracyA           float64
	AccuracyB           float64
	AccuracyC           float64
	VolatilityMaxWeight float64
	VolatilityMinWeight float64
	VolatilityWindow    int
}

// DefaultConfig returns the calibration the pipeline ships with.
func DefaultConfig() Config {
	return Config{
		WinProbScale: 0.00368208,

		BestLoss:       1,
		ExcellentLoss:  5,
		GoodLoss:       10,
		InaccuracyLoss: 20,
		MistakeLoss:    30,

		CriticalSwing: 0.18,

		SacrificeMinValue:          100,
		BrilliantMaxLoss:           150,
		GreatMoveGap:               50,
		GreatMoveAdvantage:         100,
		GreatMoveTacticalAdvantage: 150,
		GreatMoveLossThreshold:     30,
		AlternativeBadThreshold:    -100,
		CriticalEvalCeiling:        700,
		CriticalGap:                100,

		AccuracyA:           103.1668100711649,
		AccuracyB:           -0.04354415386753951,
		AccuracyC:           -3.166924740191411,
		VolatilityMaxWeight: 12,
		VolatilityMinWeight: 0.5,
		VolatilityWindow:    2,
	}
}

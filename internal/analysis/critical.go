package analysis

import "math"

// FindCriticalMoments scans the per-ply win-probability sequence and flags
// every ply whose swing crosses the significance threshold. Consecutive
// critical plies are reported independently, in ply order. Plies that failed
// analysis carry no probabilities and are skipped.
func FindCriticalMoments(cfg Config, records []MoveRecord) []CriticalMoment {
	var moments []CriticalMoment
	for _, rec := range records {
		if rec.Failed() {
			continue
		}
		swing := math.Abs(rec.WinAfter - rec.WinBefore)
		if swing > cfg.CriticalSwing {
			moments = append(moments, CriticalMoment{
				Ply:       rec.Ply,
				WinBefore: rec.WinBefore,
				WinAfter:  rec.WinAfter,
				Swing:     swing,
			})
		}
	}
	return moments
}

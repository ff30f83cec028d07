package progress

// Overall is the coarse trend label across a patient's primary metrics.
type Overall string

const (
	OverallImproving      Overall = "improving"
	OverallStable         Overall = "stable"
	OverallNeedsAttention Overall = "needs_attention"
)

// Improvement-ratio cutoffs for the overall label.
const (
	improvingRatio = 0.6
	stableRatio    = 0.3
)

// ClassifyOverallProgress aggregates per-metric improvement between the first
// and last visit's metric maps into one label. Returns nil when no primary
// metric has comparable values in both visits (insufficient data, not an
// error).
func ClassifyOverallProgress(first, last map[string]float64, primaryKeys []string, targets map[string]Target) *Overall {
	if first == nil || last == nil {
		return nil
	}
	improving, considered := 0, 0
	for _, k := range primaryKeys {
		if _, ok := targets[k]; !ok {
			continue
		}
		fv, fok := first[k]
		lv, lok := last[k]
		if !fok || !lok {
			continue
		}
		considered++
		pct := PercentChange(&fv, &lv)
		if pct == nil {
			continue
		}
		if IsImprovement(k, pct, targets) {
			improving++
		}
	}
	if considered == 0 {
		return nil
	}
	ratio := float64(improving) / float64(considered)
	var label Overall
	switch {
	case ratio >= improvingRatio:
		label = OverallImproving
	case ratio >= stableRatio:
		label = OverallStable
	default:
		label = OverallNeedsAttention
	}
	return &label
}

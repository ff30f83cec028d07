package progress

import "math"

// Status classifies a measured value against its target range.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWatch    Status = "watch"
	StatusCritical Status = "critical"
	StatusUnknown  Status = "unknown"
)

// watchMarginFraction is the share of the target range width, measured from
// either bound, that is flagged as "approaching abnormal".
const watchMarginFraction = 0.15

// ClassifyValue classifies value against the target for key. Unknown when no
// target is defined or the value is missing. A nil bound is unbounded on that
// side; the watch band applies only when both bounds are finite.
func ClassifyValue(key string, value *float64, targets map[string]Target) Status {
	t, ok := targets[key]
	if !ok || value == nil {
		return StatusUnknown
	}
	v := *value
	if t.Min != nil && v < *t.Min {
		return StatusCritical
	}
	if t.Max != nil && v > *t.Max {
		return StatusCritical
	}
	if t.Min != nil && t.Max != nil {
		margin := (*t.Max - *t.Min) * watchMarginFraction
		if v <= *t.Min+margin || v >= *t.Max-margin {
			return StatusWatch
		}
	}
	return StatusNormal
}

// PercentChange returns the percent change from first to last, rounded to one
// decimal place. Nil when either input is missing or first is zero.
func PercentChange(first, last *float64) *float64 {
	if first == nil || last == nil || *first == 0 {
		return nil
	}
	pct := ((*last - *first) / math.Abs(*first)) * 100
	pct = math.Round(pct*10) / 10
	return &pct
}

// IsImprovement reports whether pct represents clinical improvement for key,
// respecting the metric's lower-is-better polarity. A nil percent change is
// never an improvement.
func IsImprovement(key string, pct *float64, targets map[string]Target) bool {
	if pct == nil {
		return false
	}
	t, ok := targets[key]
	if !ok {
		return false
	}
	if t.LowerIsBetter {
		return *pct < 0
	}
	return *pct > 0
}

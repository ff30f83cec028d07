package progress

import "strings"

// ResolveConditionProfile maps a free-text diagnosis label to a condition
// profile. Matching order: empty input → Default; exact match; bidirectional
// case-insensitive substring match in catalog declaration order; Default.
func ResolveConditionProfile(diagnosis string) ConditionProfile {
	if diagnosis == "" {
		return conditionProfiles[DefaultCondition]
	}
	if p, ok := conditionProfiles[diagnosis]; ok {
		return p
	}
	diag := strings.ToLower(diagnosis)
	for _, name := range conditionOrder {
		if name == DefaultCondition {
			continue
		}
		lower := strings.ToLower(name)
		if strings.Contains(lower, diag) || strings.Contains(diag, lower) {
			return conditionProfiles[name]
		}
	}
	return conditionProfiles[DefaultCondition]
}

// KnownMetric reports whether key is a tracked metric.
func KnownMetric(key string) bool {
	_, ok := MetricLabels[key]
	return ok
}

// AutoDetectMetrics scans visit metric maps for any known metric key with an
// observed value and returns the discovered keys in first-seen order. Used as
// a fallback when a condition's declared primary metrics have no data.
func AutoDetectMetrics(visits []map[string]float64) []string {
	if len(visits) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var keys []string
	for _, v := range visits {
		for _, k := range metricOrder {
			if seen[k] {
				continue
			}
			if _, ok := v[k]; ok {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

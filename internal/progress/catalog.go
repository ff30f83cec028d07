package progress

// Target is the acceptable range for one metric under one condition.
// A nil bound means the range is open on that side.
type Target struct {
	Min           *float64 `json:"min"`
	Max           *float64 `json:"max"`
	Unit          string   `json:"unit"`
	LowerIsBetter bool     `json:"lowerIsBetter"`
}

// ConditionProfile describes which metrics are tracked for a diagnosis and
// what their target ranges are. Primary metrics drive the headline summary
// cards and trend charts; secondary metrics appear only in detail views.
type ConditionProfile struct {
	Name      string            `json:"name"`
	Primary   []string          `json:"primary"`
	Secondary []string          `json:"secondary"`
	Targets   map[string]Target `json:"targets"`
}

// DefaultCondition is the fallback profile name for unknown diagnoses.
const DefaultCondition = "Default"

// MetricLabels maps metric keys to display names.
var MetricLabels = map[string]string{
	"bp_systolic":      "Systolic BP",
	"bp_diastolic":     "Diastolic BP",
	"heart_rate":       "Heart Rate",
	"temperature":      "Temperature",
	"spo2":             "SpO₂",
	"weight":           "Weight",
	"height":           "Height",
	"respiratory_rate": "Respiratory Rate",
	"glucose":          "Blood Glucose",
	"hba1c":            "HbA1c",
	"cholesterol":      "Cholesterol",
	"creatinine":       "Creatinine",
	"hemoglobin":       "Hemoglobin",
	"tsh_level":        "TSH Level",
	"peak_flow":        "Peak Flow",
	"troponin":         "Troponin",
	"phq9_score":       "PHQ-9 Score",
	"gad7_score":       "GAD-7 Score",
	"pain_score":       "Pain Score",
	"sleep_hours":      "Sleep Hours",
}

// MetricIcons maps metric keys to display glyphs.
var MetricIcons = map[string]string{
	"bp_systolic": "🩸", "bp_diastolic": "🩸", "heart_rate": "❤️",
	"temperature": "🌡️", "spo2": "💨", "weight": "⚖️", "height": "📏",
	"respiratory_rate": "🌬️", "glucose": "🍭", "hba1c": "💉",
	"cholesterol": "🔬", "creatinine": "🧪", "hemoglobin": "🩺",
	"tsh_level": "🦋", "peak_flow": "💨", "troponin": "❤️",
	"phq9_score": "🧠", "gad7_score": "😰", "pain_score": "😣", "sleep_hours": "😴",
}

// metricOrder fixes a deterministic iteration order for metric keys.
var metricOrder = []string{
	"bp_systolic", "bp_diastolic", "heart_rate", "temperature", "spo2",
	"weight", "height", "respiratory_rate", "glucose", "hba1c",
	"cholesterol", "creatinine", "hemoglobin", "tsh_level", "peak_flow",
	"troponin", "phq9_score", "gad7_score", "pain_score", "sleep_hours",
}

func f(v float64) *float64 { return &v }

// conditionOrder fixes the declaration order used for substring tie-breaks.
var conditionOrder = []string{
	"Type 2 Diabetes",
	"Hypertension",
	"Acute Myocardial Infarction",
	"Heart Failure",
	"Pneumonia",
	"Major Depressive Disorder",
	"Post Operative Recovery",
	"Asthma",
	"Chronic Kidney Disease",
	"Hypothyroidism",
	"Anemia",
	DefaultCondition,
}

var conditionProfiles = map[string]ConditionProfile{
	"Type 2 Diabetes": {
		Name:      "Type 2 Diabetes",
		Primary:   []string{"glucose", "hba1c"},
		Secondary: []string{"weight", "bp_systolic", "bp_diastolic"},
		Targets: map[string]Target{
			"glucose":      {Min: f(70), Max: f(140), Unit: "mg/dL", LowerIsBetter: true},
			"hba1c":        {Min: f(4), Max: f(6.5), Unit: "%", LowerIsBetter: true},
			"weight":       {Unit: "kg", LowerIsBetter: true},
			"bp_systolic":  {Min: f(90), Max: f(120), Unit: "mmHg", LowerIsBetter: true},
			"bp_diastolic": {Min: f(60), Max: f(80), Unit: "mmHg", LowerIsBetter: true},
		},
	},
	"Hypertension": {
		Name:      "Hypertension",
		Primary:   []string{"bp_systolic", "bp_diastolic"},
		Secondary: []string{"heart_rate", "weight"},
		Targets: map[string]Target{
			"bp_systolic":  {Min: f(90), Max: f(120), Unit: "mmHg", LowerIsBetter: true},
			"bp_diastolic": {Min: f(60), Max: f(80), Unit: "mmHg", LowerIsBetter: true},
			"heart_rate":   {Min: f(60), Max: f(100), Unit: "bpm", LowerIsBetter: true},
			"weight":       {Unit: "kg", LowerIsBetter: true},
		},
	},
	"Acute Myocardial Infarction": {
		Name:      "Acute Myocardial Infarction",
		Primary:   []string{"bp_systolic", "heart_rate", "spo2"},
		Secondary: []string{"bp_diastolic", "weight"},
		Targets: map[string]Target{
			"bp_systolic":  {Min: f(90), Max: f(120), Unit: "mmHg", LowerIsBetter: true},
			"heart_rate":   {Min: f(60), Max: f(100), Unit: "bpm", LowerIsBetter: true},
			"spo2":         {Min: f(95), Max: f(100), Unit: "%", LowerIsBetter: false},
			"bp_diastolic": {Min: f(60), Max: f(80), Unit: "mmHg", LowerIsBetter: true},
			"weight":       {Unit: "kg", LowerIsBetter: true},
		},
	},
	"Heart Failure": {
		Name:      "Heart Failure",
		Primary:   []string{"bp_systolic", "bp_diastolic", "weight"},
		Secondary: []string{"heart_rate", "spo2"},
		Targets: map[string]Target{
			"bp_systolic":  {Min: f(90), Max: f(120), Unit: "mmHg", LowerIsBetter: true},
			"bp_diastolic": {Min: f(60), Max: f(80), Unit: "mmHg", LowerIsBetter: true},
			"weight":       {Unit: "kg", LowerIsBetter: true},
			"spo2":         {Min: f(95), Max: f(100), Unit: "%", LowerIsBetter: false},
			"heart_rate":   {Min: f(60), Max: f(100), Unit: "bpm", LowerIsBetter: true},
		},
	},
	"Pneumonia": {
		Name:      "Pneumonia",
		Primary:   []string{"spo2", "temperature", "heart_rate"},
		Secondary: []string{"respiratory_rate"},
		Targets: map[string]Target{
			"spo2":             {Min: f(95), Max: f(100), Unit: "%", LowerIsBetter: false},
			"temperature":      {Min: f(97), Max: f(99), Unit: "°F", LowerIsBetter: true},
			"heart_rate":       {Min: f(60), Max: f(100), Unit: "bpm", LowerIsBetter: true},
			"respiratory_rate": {Min: f(12), Max: f(20), Unit: "/min", LowerIsBetter: true},
		},
	},
	"Major Depressive Disorder": {
		Name:      "Major Depressive Disorder",
		Primary:   []string{"phq9_score", "gad7_score"},
		Secondary: []string{"weight", "sleep_hours"},
		Targets: map[string]Target{
			"phq9_score":  {Min: f(0), Max: f(4), Unit: "score", LowerIsBetter: true},
			"gad7_score":  {Min: f(0), Max: f(4), Unit: "score", LowerIsBetter: true},
			"sleep_hours": {Min: f(7), Max: f(9), Unit: "hrs", LowerIsBetter: false},
			"weight":      {Unit: "kg", LowerIsBetter: false},
		},
	},
	"Post Operative Recovery": {
		Name:      "Post Operative Recovery",
		Primary:   []string{"pain_score", "temperature", "spo2"},
		Secondary: []string{"bp_systolic", "heart_rate"},
		Targets: map[string]Target{
			"pain_score":  {Min: f(0), Max: f(3), Unit: "/10", LowerIsBetter: true},
			"temperature": {Min: f(97), Max: f(99), Unit: "°F", LowerIsBetter: true},
			"spo2":        {Min: f(95), Max: f(100), Unit: "%", LowerIsBetter: false},
			"bp_systolic": {Min: f(90), Max: f(120), Unit: "mmHg", LowerIsBetter: true},
			"heart_rate":  {Min: f(60), Max: f(100), Unit: "bpm", LowerIsBetter: true},
		},
	},
	"Asthma": {
		Name:      "Asthma",
		Primary:   []string{"spo2", "respiratory_rate", "peak_flow"},
		Secondary: []string{"heart_rate"},
		Targets: map[string]Target{
			"spo2":             {Min: f(95), Max: f(100), Unit: "%", LowerIsBetter: false},
			"respiratory_rate": {Min: f(12), Max: f(20), Unit: "/min", LowerIsBetter: true},
			"peak_flow":        {Min: f(400), Unit: "L/min", LowerIsBetter: false},
			"heart_rate":       {Min: f(60), Max: f(100), Unit: "bpm", LowerIsBetter: true},
		},
	},
	"Chronic Kidney Disease": {
		Name:      "Chronic Kidney Disease",
		Primary:   []string{"creatinine", "bp_systolic", "bp_diastolic"},
		Secondary: []string{"weight"},
		Targets: map[string]Target{
			"creatinine":   {Min: f(0.6), Max: f(1.2), Unit: "mg/dL", LowerIsBetter: true},
			"bp_systolic":  {Min: f(90), Max: f(120), Unit: "mmHg", LowerIsBetter: true},
			"bp_diastolic": {Min: f(60), Max: f(80), Unit: "mmHg", LowerIsBetter: true},
			"weight":       {Unit: "kg", LowerIsBetter: true},
		},
	},
	"Hypothyroidism": {
		Name:      "Hypothyroidism",
		Primary:   []string{"tsh_level", "weight"},
		Secondary: []string{"heart_rate"},
		Targets: map[string]Target{
			"tsh_level":  {Min: f(0.4), Max: f(4.0), Unit: "mIU/L", LowerIsBetter: true},
			"weight":     {Unit: "kg", LowerIsBetter: true},
			"heart_rate": {Min: f(60), Max: f(100), Unit: "bpm", LowerIsBetter: false},
		},
	},
	"Anemia": {
		Name:      "Anemia",
		Primary:   []string{"hemoglobin", "heart_rate"},
		Secondary: []string{"weight", "spo2"},
		Targets: map[string]Target{
			"hemoglobin": {Min: f(12), Max: f(17), Unit: "g/dL", LowerIsBetter: false},
			"heart_rate": {Min: f(60), Max: f(100), Unit: "bpm", LowerIsBetter: true},
			"spo2":       {Min: f(95), Max: f(100), Unit: "%", LowerIsBetter: false},
			"weight":     {Unit: "kg", LowerIsBetter: false},
		},
	},
	DefaultCondition: {
		Name:      DefaultCondition,
		Primary:   []string{"bp_systolic", "heart_rate", "spo2"},
		Secondary: []string{"weight", "temperature"},
		Targets: map[string]Target{
			"bp_systolic":  {Min: f(90), Max: f(120), Unit: "mmHg", LowerIsBetter: true},
			"bp_diastolic": {Min: f(60), Max: f(80), Unit: "mmHg", LowerIsBetter: true},
			"heart_rate":   {Min: f(60), Max: f(100), Unit: "bpm", LowerIsBetter: true},
			"spo2":         {Min: f(95), Max: f(100), Unit: "%", LowerIsBetter: false},
			"temperature":  {Min: f(97), Max: f(99), Unit: "°F", LowerIsBetter: true},
			"weight":       {Unit: "kg", LowerIsBetter: true},
		},
	},
}

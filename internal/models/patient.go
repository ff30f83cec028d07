package models

import (
	"sort"
	"time"
)

// Visit source tags, used only for merge debugging.
const (
	VisitSourceLocal  = "local"
	VisitSourceRemote = "remote"
)

// MetricMap is a sparse mapping from metric key to measured value. An absent
// key means "not measured this visit", never zero.
type MetricMap map[string]float64

// Visit is one clinical encounter's measurements. Visits are immutable once
// appended; corrections are modeled as a new visit.
type Visit struct {
	VisitNumber  int       `json:"visitNumber"`
	Date         string    `json:"date"` // display only, never parsed for ordering
	Timestamp    time.Time `json:"timestamp"`
	MetricValues MetricMap `json:"metricValues"`
	Medications  []string  `json:"medications"`
	Notes        string    `json:"notes"`
	Diagnosis    string    `json:"diagnosis"`
	ICDCode      string    `json:"icdCode"`
	Source       string    `json:"source,omitempty"`
}

// VisitList is stored as one JSON document column; the patient record is the
// unit of persistence, matching the upsert-by-id repository contract.
type VisitList []Visit

// Patient is a patient identity plus its full chronological visit history.
type Patient struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	Name           string    `gorm:"size:150;not null" json:"name"`
	Age            string    `gorm:"size:10" json:"age"`
	Gender         string    `gorm:"size:20" json:"gender"`
	BloodGroup     string    `gorm:"size:10" json:"bloodGroup"`
	Contact        string    `gorm:"size:40" json:"contact"`
	Diagnosis      string    `gorm:"size:255" json:"diagnosis"`
	ICDCode        string    `gorm:"size:100" json:"icdCode"`
	CaretakerName  string    `gorm:"size:150" json:"caretakerName,omitempty"`
	CaretakerPhone string    `gorm:"size:40" json:"caretakerPhone,omitempty"`
	CaretakerEmail string    `gorm:"size:255" json:"caretakerEmail,omitempty"`
	TotalVisits    int       `json:"totalVisits"`
	FirstVisitDate string    `gorm:"size:40" json:"firstVisit"`
	LastVisitDate  string    `gorm:"size:40" json:"lastVisit"`
	Visits         VisitList `gorm:"serializer:json;type:json" json:"visits"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FormatVisitDate renders a timestamp as the display date stored on visits
// and patient summary fields ("02 Jan 2006").
func FormatVisitDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// RecomputeDerived re-sorts visits by timestamp ascending, reassigns contiguous
// 1-indexed visit numbers and recomputes the summary fields. Must be called
// after every append or merge; the derived fields are never mutated directly.
func (p *Patient) RecomputeDerived() {
	sort.SliceStable(p.Visits, func(i, j int) bool {
		return p.Visits[i].Timestamp.Before(p.Visits[j].Timestamp)
	})
	for i := range p.Visits {
		p.Visits[i].VisitNumber = i + 1
	}
	p.TotalVisits = len(p.Visits)
	if len(p.Visits) > 0 {
		p.FirstVisitDate = p.Visits[0].Date
		p.LastVisitDate = p.Visits[len(p.Visits)-1].Date
	} else {
		p.FirstVisitDate = ""
		p.LastVisitDate = ""
	}
}

// LastVisit returns the most recent visit, or nil for an empty history.
func (p *Patient) LastVisit() *Visit {
	if len(p.Visits) == 0 {
		return nil
	}
	return &p.Visits[len(p.Visits)-1]
}

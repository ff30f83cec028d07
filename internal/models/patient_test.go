package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecomputeDerived(t *testing.T) {
	jan := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	p := Patient{
		Visits: VisitList{
			{Date: FormatVisitDate(mar), Timestamp: mar},
			{Date: FormatVisitDate(jan), Timestamp: jan},
			{Date: FormatVisitDate(feb), Timestamp: feb},
		},
	}
	p.RecomputeDerived()

	require.Equal(t, 3, p.TotalVisits)
	require.Equal(t, "10 Jan 2026", p.FirstVisitDate)
	require.Equal(t, "10 Mar 2026", p.LastVisitDate)
	for i, v := range p.Visits {
		require.Equal(t, i+1, v.VisitNumber)
		if i > 0 {
			require.True(t, p.Visits[i-1].Timestamp.Before(v.Timestamp))
		}
	}
}

func TestRecomputeDerivedEmptyHistory(t *testing.T) {
	p := Patient{TotalVisits: 5, FirstVisitDate: "stale", LastVisitDate: "stale"}
	p.RecomputeDerived()
	require.Zero(t, p.TotalVisits)
	require.Empty(t, p.FirstVisitDate)
	require.Empty(t, p.LastVisitDate)
	require.Nil(t, p.LastVisit())
}

func TestFormatVisitDate(t *testing.T) {
	require.Equal(t, "05 Jan 2026", FormatVisitDate(time.Date(2026, 1, 5, 23, 0, 0, 0, time.UTC)))
}

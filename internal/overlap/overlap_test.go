package overlap_test

import (
	"testing"
	"time"

	"github.com/Falasefemi2/hr-portal/internal/overlap"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIntersects(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint before", "2024-06-01", "2024-06-03", "2024-06-04", "2024-06-06", false},
		{"disjoint after", "2024-06-07", "2024-06-09", "2024-06-04", "2024-06-06", false},
		{"touching end", "2024-06-01", "2024-06-04", "2024-06-04", "2024-06-06", true},
		{"touching start", "2024-06-06", "2024-06-08", "2024-06-04", "2024-06-06", true},
		{"contained", "2024-06-05", "2024-06-05", "2024-06-04", "2024-06-06", true},
		{"containing", "2024-06-01", "2024-06-30", "2024-06-04", "2024-06-06", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := overlap.Intersects(day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd))
			assert.Equal(t, tc.want, got)
			// symmetric
			assert.Equal(t, tc.want, overlap.Intersects(day(tc.bStart), day(tc.bEnd), day(tc.aStart), day(tc.aEnd)))
		})
	}
}

func TestQuery_Matches(t *testing.T) {
	q := overlap.Query{
		EmployeeIDs: []string{"E2", "E3"},
		Start:       day("2024-06-04"),
		End:         day("2024-06-06"),
		ExcludeID:   100,
	}

	base := overlap.Candidate{
		ID:         101,
		EmployeeID: "E2",
		Status:     overlap.StatusPending,
		StartDate:  day("2024-06-01"),
		EndDate:    day("2024-06-05"),
	}

	t.Run("pending in department overlaps", func(t *testing.T) {
		assert.True(t, q.Matches(base))
	})

	t.Run("approved overlaps", func(t *testing.T) {
		c := base
		c.Status = overlap.StatusApproved
		assert.True(t, q.Matches(c))
	})

	t.Run("rejected never blocks", func(t *testing.T) {
		c := base
		c.Status = "REJECTED"
		assert.False(t, q.Matches(c))
	})

	t.Run("excluded id is ignored", func(t *testing.T) {
		c := base
		c.ID = 100
		assert.False(t, q.Matches(c))
	})

	t.Run("other department employee is ignored", func(t *testing.T) {
		c := base
		c.EmployeeID = "X9"
		assert.False(t, q.Matches(c))
	})

	t.Run("no intersection", func(t *testing.T) {
		c := base
		c.StartDate, c.EndDate = day("2024-06-07"), day("2024-06-08")
		assert.False(t, q.Matches(c))
	})
}

func TestQuery_Empty(t *testing.T) {
	assert.True(t, overlap.Query{}.Empty())
	assert.False(t, overlap.Query{EmployeeIDs: []string{"E1"}}.Empty())
}

func TestDays(t *testing.T) {
	assert.Equal(t, 1, overlap.Days(day("2024-06-01"), day("2024-06-01")))
	assert.Equal(t, 5, overlap.Days(day("2024-06-01"), day("2024-06-05")))
	assert.Equal(t, 0, overlap.Days(day("2024-06-05"), day("2024-06-01")))
	assert.Equal(t, 3, overlap.Days(day("2024-02-28"), day("2024-03-01")))
}

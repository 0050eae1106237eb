// Package overlap describes the department overlap rule: a request blocks a
// date range when it belongs to one of the given employees, is still pending
// or approved, and its closed interval intersects the range.
package overlap

import "time"

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

// BlockingStatuses are the statuses that take part in overlap detection.
var BlockingStatuses = []string{StatusPending, StatusApproved}

// Query selects the blocking requests of EmployeeIDs intersecting [Start, End].
// ExcludeID is the request under decision, zero for a new request.
type Query struct {
	EmployeeIDs []string
	Start       time.Time
	End         time.Time
	ExcludeID   int64
}

// Empty reports whether the query can match nothing, in which case no
// lookup needs to be issued.
func (q Query) Empty() bool {
	return len(q.EmployeeIDs) == 0
}

// Intersects reports whether two closed date intervals share at least one day.
// Touching endpoints conflict.
func Intersects(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

func IsBlocking(status string) bool {
	for _, s := range BlockingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Candidate is the projection of a stored request the rule needs.
type Candidate struct {
	ID         int64
	EmployeeID string
	Status     string
	StartDate  time.Time
	EndDate    time.Time
}

// Matches applies q to a single stored request.
func (q Query) Matches(c Candidate) bool {
	if c.ID != 0 && c.ID == q.ExcludeID {
		return false
	}
	if !IsBlocking(c.Status) {
		return false
	}
	if !q.hasEmployee(c.EmployeeID) {
		return false
	}
	return Intersects(c.StartDate, c.EndDate, q.Start, q.End)
}

func (q Query) hasEmployee(id string) bool {
	for _, e := range q.EmployeeIDs {
		if e == id {
			return true
		}
	}
	return false
}

// Date truncates t to midnight UTC, the granularity requests are stored at.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days counts the days of the closed interval [start, end].
func Days(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(Date(end).Sub(Date(start)).Hours()/24) + 1
}

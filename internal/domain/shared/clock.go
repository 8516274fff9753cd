package shared

import "time"

// DateLayout is how campaign dates appear in unit histories and reports
const DateLayout = "2006-01-02"

// Clock tells campaign time. Handlers take one so tests can pin the date.
type Clock interface {
	Now() time.Time
}

// CampaignDate formats the clock's current day
func CampaignDate(c Clock) string {
	return c.Now().Format(DateLayout)
}

// RealClock reads the system time in UTC
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock
func NewRealClock() Clock {
	return RealClock{}
}

// MockClock is a clock tests move by hand
type MockClock struct {
	CurrentTime time.Time
}

func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// AdvanceDays moves the clock forward by whole campaign days
func (m *MockClock) AdvanceDays(days int) {
	m.CurrentTime = m.CurrentTime.AddDate(0, 0, days)
}

// NewMockClock creates a MockClock at start, or at the current time when
// start is zero
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{CurrentTime: start}
}

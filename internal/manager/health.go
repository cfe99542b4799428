package manager

import "time"

// Status summarizes a manager's recent update health.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
}

// IsReady reports whether the manager has fetched successfully at least once
// and is not in a failure streak.
func (s Status) IsReady() bool {
	return !s.LastSuccess.IsZero() && s.ConsecutiveFailures == 0
}

// Status returns a copy of the manager's health state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// recordSuccess is called with the lock held.
func (m *Manager) recordSuccess() {
	now := m.now()
	m.status.LastAttempt = now
	m.status.LastSuccess = now
	m.status.LastError = ""
	m.status.ConsecutiveFailures = 0
}

func (m *Manager) recordFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.LastAttempt = m.now()
	m.status.LastError = err.Error()
	m.status.ConsecutiveFailures++
}

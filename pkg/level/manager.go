package level

// Manager tracks the current campaign level
type Manager struct {
	current int
}

// NewManager creates a manager starting at level 1
func NewManager() *Manager {
	return &Manager{current: 1}
}

// Current returns the active level number
func (m *Manager) Current() int {
	return m.current
}

// Config returns the active level's configuration
func (m *Manager) Config() Config {
	return Get(m.current)
}

// Set jumps to a level (minimum 1)
func (m *Manager) Set(n int) {
	if n < 1 {
		n = 1
	}
	m.current = n
}

// Advance moves to the next level and returns its number
func (m *Manager) Advance() int {
	m.current++
	return m.current
}

// Reset returns to level 1
func (m *Manager) Reset() {
	m.current = 1
}

// IsComplete reports whether distance meets the active level's requirement
func (m *Manager) IsComplete(distance float64) bool {
	return distance >= m.Config().DistanceRequired
}

// Reward is the money granted for completing the active level
func (m *Manager) Reward() int {
	return m.Config().MoneyReward
}

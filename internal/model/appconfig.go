package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Logging
	LogLevel string `json:"log_level" mapstructure:"log_level"` // "debug", "info", "warn", "error"
	LogFile  string `json:"log_file" mapstructure:"log_file"`   // empty = stderr

	// Default solver settings applied to new runs
	Solver SolverSettings `json:"solver" mapstructure:"solver"`

	// Export preferences
	ExportDir       string   `json:"export_dir" mapstructure:"export_dir"`
	ExportWitness   bool     `json:"export_witness" mapstructure:"export_witness"`
	RecentInputs    []string `json:"recent_inputs" mapstructure:"recent_inputs"`
	MaxRecentInputs int      `json:"max_recent_inputs" mapstructure:"max_recent_inputs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		LogLevel:        "info",
		LogFile:         "",
		Solver:          DefaultSettings(),
		ExportDir:       ".",
		ExportWitness:   true,
		RecentInputs:    []string{},
		MaxRecentInputs: 10,
	}
}

// ApplyToSettings copies the solver defaults from AppConfig into a SolverSettings struct.
func (c AppConfig) ApplyToSettings(s *SolverSettings) {
	s.UsePrecheck = c.Solver.UsePrecheck
	s.ValidateRegion = c.Solver.ValidateRegion
	s.KeepWitness = c.Solver.KeepWitness || c.ExportWitness
}

// AddRecentInput moves path to the front of the recent inputs list,
// dropping duplicates and trimming to MaxRecentInputs.
func (c *AppConfig) AddRecentInput(path string) {
	recent := []string{path}
	for _, p := range c.RecentInputs {
		if p != path {
			recent = append(recent, p)
		}
	}
	limit := c.MaxRecentInputs
	if limit <= 0 {
		limit = 10
	}
	if len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentInputs = recent
}

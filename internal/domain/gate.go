package domain

import "time"

// GateResult is the outcome of one quality gate command
type GateResult struct {
	Command  string        `json:"command"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
	ExitCode int           `json:"exit_code"`
	Name     string        `json:"name"`
	Output   string        `json:"output,omitempty"`
	Passed   bool          `json:"passed"`
}

// FailedGates returns the names of the gates that did not pass
func FailedGates(results []GateResult) []string {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r.Name)
		}
	}
	return failed
}

package domain

// FileCheck records whether a required project file exists
type FileCheck struct {
	Exists bool   `json:"exists"`
	Path   string `json:"path"`
}

// ProjectReport is a read-only snapshot of a project's readiness
type ProjectReport struct {
	Backlog    *TaskStats       `json:"backlog,omitempty"`
	BacklogErr string           `json:"backlog_error,omitempty"`
	Config     ValidationResult `json:"config"`
	Files      []FileCheck      `json:"files"`
	Git        *GitStatus       `json:"git,omitempty"`
	GitErr     string           `json:"git_error,omitempty"`
	NextTask   *Task            `json:"next_task,omitempty"`
	RepoRoot   string           `json:"repo_root"`
}

// Healthy reports whether the configuration is valid and every required file exists
func (r ProjectReport) Healthy() bool {
	if !r.Config.Valid() {
		return false
	}
	for _, f := range r.Files {
		if !f.Exists {
			return false
		}
	}
	return true
}

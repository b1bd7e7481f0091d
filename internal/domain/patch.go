package domain

// DevNull is the unified-diff sentinel for an absent side of a change
const DevNull = "/dev/null"

// ChangeKind classifies a file-level change in a patch
type ChangeKind string

const (
	ChangeCreate ChangeKind = "create"
	ChangeDelete ChangeKind = "delete"
	ChangeModify ChangeKind = "modify"
	ChangeRename ChangeKind = "rename"
)

// PatchChange is one file-level change described by a unified diff.
// Create has no OldPath, Delete has no NewPath, Rename has two distinct paths
// and Modify has OldPath == NewPath.
type PatchChange struct {
	Kind    ChangeKind `json:"kind"`
	NewPath string     `json:"new_path,omitempty"`
	OldPath string     `json:"old_path,omitempty"`
}

// Paths returns every repository path the change touches
func (c PatchChange) Paths() []string {
	switch c.Kind {
	case ChangeCreate:
		return []string{c.NewPath}
	case ChangeDelete, ChangeModify:
		return []string{c.OldPath}
	default:
		return []string{c.OldPath, c.NewPath}
	}
}

// Target returns the path that best names the change for display
func (c PatchChange) Target() string {
	if c.NewPath != "" {
		return c.NewPath
	}
	return c.OldPath
}

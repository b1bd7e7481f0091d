package storage

import "time"

// RunModel is the GORM model for the runs table
type RunModel struct {
	Branch          string `gorm:"not null;default:''"`
	CommitHash      string `gorm:"default:''"`
	CreatedAt       time.Time
	Error           string          `gorm:"default:''"`
	FinishedAt      *time.Time      `gorm:"default:null"`
	ID              string          `gorm:"primaryKey"`
	Iterations      int             `gorm:"not null;default:0"`
	Mode            string          `gorm:"not null;check:mode IN ('agent','patch')"`
	Model           string          `gorm:"default:''"`
	Outcome         string          `gorm:"not null;default:'running';index:idx_runs_outcome"`
	RepoRoot        string          `gorm:"not null;index:idx_runs_repo_root"`
	StartedAt       time.Time       `gorm:"not null;index:idx_runs_started_at"`
	TaskDescription string          `gorm:"default:''"`
	TaskID          string          `gorm:"default:''"`
	ToolCalls       []ToolCallModel `gorm:"foreignKey:RunID;references:ID;constraint:OnDelete:CASCADE"`
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (RunModel) TableName() string { return "runs" }

// ToolCallModel is the GORM model for tool calls made during an agent run
type ToolCallModel struct {
	Arguments  string `gorm:"not null;default:''"`
	CreatedAt  time.Time
	DurationMs int64  `gorm:"not null;default:0"`
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	IsError    bool   `gorm:"not null;default:false"`
	Name       string `gorm:"not null"`
	Result     string `gorm:"not null;default:''"`
	RunID      string `gorm:"not null;index:idx_tool_calls_run"`
	Sequence   int    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ToolCallModel) TableName() string { return "tool_calls" }

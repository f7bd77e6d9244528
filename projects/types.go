// Package projects classifies time-bound work records into operational
// buckets and computes portfolio statistics for the project dashboard.
package projects

import (
	"time"

	"github.com/google/uuid"
)

// Status of a work record. Status and Progress are independently supplied
// and may disagree (a completed record can sit at 80%); classification
// trusts Status for completion and never reconciles the two.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Priority of a work record.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Record is a time-bound work item. A nil EndDate means the record has no
// usable deadline and is never considered urgent or overdue.
type Record struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Status    Status     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Progress  float64    `json:"progress"` // 0..100
	Budget    float64    `json:"budget"`
	Priority  Priority   `json:"priority"`
	CreatedAt time.Time  `json:"created_at"`
}

// Counts are the headline figures of a portfolio.
type Counts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// Summary is the derived aggregate over a record collection. It is
// recomputed on demand and never cached here.
type Summary struct {
	Counts          Counts   `json:"counts"`
	AverageProgress float64  `json:"average_progress"`
	TotalBudget     float64  `json:"total_budget"`
	Urgent          []Record `json:"urgent"`
	Recent          []Record `json:"recent"`
}

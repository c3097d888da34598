package dto

import (
	"time"

	"productivity-tracker.com/productivity-tracker/internal/constants"
	model "productivity-tracker.com/productivity-tracker/internal/models"
)

type CreateTaskRequest struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	DueDate           *time.Time `json:"due_date"`
	EstimatedDuration int        `json:"estimated_duration"`
	Category          string     `json:"category"`
	Tags              []string   `json:"tags"`
	Recurring         bool       `json:"recurring"`
	RecurrencePattern string     `json:"recurrence_pattern"`
}

func (r *CreateTaskRequest) Task() *model.Task {
	return &model.Task{
		Title:             r.Title,
		Description:       r.Description,
		Status:            constants.TaskStatus(r.Status),
		Priority:          constants.TaskPriority(r.Priority),
		DueDate:           r.DueDate,
		EstimatedDuration: r.EstimatedDuration,
		Category:          r.Category,
		Tags:              r.Tags,
		Recurring:         r.Recurring,
		RecurrencePattern: r.RecurrencePattern,
	}
}

// UpdateTaskRequest is a partial patch; nil fields are left untouched.
type UpdateTaskRequest struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	Status            *string    `json:"status"`
	Priority          *string    `json:"priority"`
	DueDate           *time.Time `json:"due_date"`
	EstimatedDuration *int       `json:"estimated_duration"`
	ActualDuration    *int       `json:"actual_duration"`
	Category          *string    `json:"category"`
	Tags              []string   `json:"tags"`
	Recurring         *bool      `json:"recurring"`
	RecurrencePattern *string    `json:"recurrence_pattern"`
}

func (r *UpdateTaskRequest) Fields() map[string]any {
	fields := make(map[string]any)
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.Priority != nil {
		fields["priority"] = *r.Priority
	}
	if r.DueDate != nil {
		fields["due_date"] = *r.DueDate
	}
	if r.EstimatedDuration != nil {
		fields["estimated_duration"] = *r.EstimatedDuration
	}
	if r.ActualDuration != nil {
		fields["actual_duration"] = *r.ActualDuration
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Tags != nil {
		fields["tags"] = r.Tags
	}
	if r.Recurring != nil {
		fields["recurring"] = *r.Recurring
	}
	if r.RecurrencePattern != nil {
		fields["recurrence_pattern"] = *r.RecurrencePattern
	}
	return fields
}

type CompleteTaskRequest struct {
	ActualDuration int `json:"actual_duration"`
}

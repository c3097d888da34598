package dto

import model "productivity-tracker.com/productivity-tracker/internal/models"

type CreateHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
}

func (r *CreateHabitRequest) Habit() *model.Habit {
	return &model.Habit{
		Name:        r.Name,
		Description: r.Description,
		Frequency:   r.Frequency,
	}
}

type UpdateHabitRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Frequency   *string `json:"frequency"`
	StreakCount *int    `json:"streak_count"`
}

func (r *UpdateHabitRequest) Fields() map[string]any {
	fields := make(map[string]any)
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Frequency != nil {
		fields["frequency"] = *r.Frequency
	}
	if r.StreakCount != nil {
		fields["streak_count"] = *r.StreakCount
	}
	return fields
}

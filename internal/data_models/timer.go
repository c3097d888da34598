package dto

type StartWorkRequest struct {
	TaskID *uint `json:"task_id"`
}

type TimerConfigRequest struct {
	WorkMinutes  int `json:"work_minutes"`
	BreakMinutes int `json:"break_minutes"`
}

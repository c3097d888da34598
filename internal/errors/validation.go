package errors

import "net/http"

var ErrTitleRequired = &Exception{
	Message:    "task title is required",
	StatusCode: http.StatusBadRequest,
}

var ErrHabitNameRequired = &Exception{
	Message:    "habit name is required",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidJSON = &Exception{
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidID = &Exception{
	Message:    "id must be a positive integer",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidDays = &Exception{
	Message:    "days must be positive",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidDurations = &Exception{
	Message:    "durations must be positive",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidStatus = &Exception{
	Message:    "status must be one of pending, in_progress, completed, cancelled",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidPriority = &Exception{
	Message:    "priority must be one of low, medium, high, urgent",
	StatusCode: http.StatusBadRequest,
}

package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrHabitNotFound = &Exception{
	Message:    "habit not found",
	StatusCode: http.StatusNotFound,
}

package errors

import "net/http"

var ErrTimerRunning = &Exception{
	Message:    "a timer session is already running",
	StatusCode: http.StatusConflict,
}

package dto

// Response is the uniform success envelope. Error responses use the matching
// shape rendered by the apperr handler.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db,omitempty"`
}

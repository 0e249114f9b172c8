package model

type ErrorResponse struct {
	Error *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

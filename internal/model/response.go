package model

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *Meta     `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	Total   int    `json:"total"`
	Section string `json:"section,omitempty"`
	Sort    string `json:"sort,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

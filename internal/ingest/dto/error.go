package dto

// ErrorResponse is the generic error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

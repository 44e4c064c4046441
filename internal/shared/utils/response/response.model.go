package response

// StandardApiResponse is the envelope every planetaria endpoint
// returns, from catalog reads to seat booking conflicts. Errors holds
// structured detail such as the field and accepted range of a
// rejected seat coordinate.
type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status code
	Message    string      `json:"message"`          // Human-readable message
	Data       interface{} `json:"data,omitempty"`   // Payload for success
	Errors     interface{} `json:"errors,omitempty"` // Validation or error details
}

// Package response contains the response bodies the handlers return to the client.
package response

// A struct type that represents a message with a status and body.
// Message has the following properties:
// - Status: The status of the message.
// - Body: The body of the message.
type Message struct {
	Status string `json:"status"`
	Body   string `json:"body"`
}

// Response carries a single human-readable message.
type Response struct {
	Message string `json:"message"`
}

// ErrorResponse carries a single human-readable error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

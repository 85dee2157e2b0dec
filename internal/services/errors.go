package services

// ValidationError marks rejected request input. The HTTP layer maps it to a
// 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

package v1

import "strings"

// sanitizeBindError returns a user-friendly message for binding errors.
// Raw gin/validator errors expose internal structure and never reach clients.
func sanitizeBindError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if strings.Contains(msg, "Field validation") ||
		strings.Contains(msg, "cannot unmarshal") ||
		strings.Contains(msg, "Key:") {
		return "Invalid request"
	}
	if len(msg) < 100 && !strings.Contains(msg, "Error:") {
		return msg
	}
	return "Invalid request"
}

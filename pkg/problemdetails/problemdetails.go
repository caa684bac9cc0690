package problemdetails

import "fmt"

const (
	TypeNotFound        = "not-found"
	TypeConflict        = "conflict"
	TypeTooManyRetries  = "too-many-retries"
	TypeInternalError   = "internal-error"
	TypeValidationError = "validation-error"
)

// ProblemDetail is an RFC 7807 error payload returned by the HTTP surface.
type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func New(status int, problemType, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   fmt.Sprintf("https://api.example.com/problems/%s", problemType),
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// Error makes ProblemDetail usable as a logic-layer error that the rest
// error handler unwraps into a response.
func (p *ProblemDetail) Error() string {
	return fmt.Sprintf("%d %s: %s", p.Status, p.Title, p.Detail)
}

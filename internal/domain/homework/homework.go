package homework

// Homework is a single submission record as returned by the review API.
// Only the fields the monitor consumes are mapped.
type Homework struct {
	HomeworkName    string `json:"homework_name"`
	Status          Status `json:"status"`
	ReviewerComment string `json:"reviewer_comment"`
}

// internal/domain/homework/status.go
package homework

import "fmt"

// Status represents the review state of a submission.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// verdicts maps each known review status to its human-readable sentence.
var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// UnknownStatusError reports a status value outside the known set.
type UnknownStatusError struct {
	Status Status
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework status: %q", string(e.Status))
}

// Verdict renders the notification text for a homework record.
// A status outside the known set is a hard failure, not a skip.
func Verdict(hw Homework) (string, error) {
	verdict, ok := verdicts[hw.Status]
	if !ok {
		return "", &UnknownStatusError{Status: hw.Status}
	}

	message := fmt.Sprintf("Изменился статус проверки работы %q. %s", hw.HomeworkName, verdict)
	if hw.ReviewerComment != "" {
		message += "\nКомментарий ревьюера: " + hw.ReviewerComment
	}
	return message, nil
}

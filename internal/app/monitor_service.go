// internal/app/monitor_service.go
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/infra/practicum"

	"github.com/sirupsen/logrus"
)

// PracticumClient is the slice of the API client the monitor depends on.
type PracticumClient interface {
	FetchUpdates(ctx context.Context, fromDate int64) (*practicum.PollResponse, error)
}

// CycleOutcome classifies how the last poll cycle ended.
type CycleOutcome string

const (
	OutcomeNoUpdates CycleOutcome = "NO_UPDATES"
	OutcomeNotified  CycleOutcome = "NOTIFIED"
	OutcomeUnchanged CycleOutcome = "UNCHANGED"
	OutcomeError     CycleOutcome = "ERROR"
)

// MonitorSnapshot is a point-in-time view of the monitor state,
// consumed by the /status bot command.
type MonitorSnapshot struct {
	Cursor      int64
	LastCycleAt time.Time
	LastOutcome CycleOutcome
	LastVerdict string
	LastError   string
}

// MonitorService runs the poll → interpret → notify cycle and owns all
// mutable monitor state.
type MonitorService struct {
	client   PracticumClient
	telegram domainTelegram.Client
	chatID   int64
	logger   *logrus.Entry

	// The poll path is single-threaded; the mutex only guards snapshot
	// reads coming from the bot goroutine.
	mu           sync.Mutex
	cursor       int64
	lastError    string
	lastReported string // name/status of the last record we notified about
	lastCycleAt  time.Time
	lastOutcome  CycleOutcome
	lastVerdict  string
}

func NewMonitorService(
	client PracticumClient,
	tc domainTelegram.Client,
	chatID int64,
	startFrom int64,
	logger *logrus.Entry,
) *MonitorService {
	return &MonitorService{
		client:   client,
		telegram: tc,
		chatID:   chatID,
		cursor:   startFrom,
		logger:   logger,
	}
}

// RunCycle performs one full poll cycle. It never returns an error: every
// failure mode is contained here so the scheduler keeps ticking.
//
// The cursor advances only when the cycle reaches its terminal state
// (empty response, duplicate record, or a delivered/skipped notification).
// Any error leaves the cursor in place so the offending window is
// re-fetched on the next cycle.
func (s *MonitorService) RunCycle(ctx context.Context) {
	s.mu.Lock()
	fromDate := s.cursor
	s.mu.Unlock()

	s.logger.WithField("from_date", fromDate).Debug("Polling homework statuses")
	resp, err := s.client.FetchUpdates(ctx, fromDate)
	if err != nil {
		s.failCycle(err)
		return
	}

	if len(resp.Homeworks) == 0 {
		s.logger.Debug("No homework updates since last poll")
		s.completeCycle(resp.CurrentDate, OutcomeNoUpdates, "")
		return
	}

	// Only the most recent record is consulted; the API returns newest first.
	latest := resp.Homeworks[0]
	message, err := homework.Verdict(latest)
	if err != nil {
		s.failCycle(err)
		return
	}

	reportKey := latest.HomeworkName + "/" + string(latest.Status)
	s.mu.Lock()
	alreadyReported := reportKey == s.lastReported
	s.mu.Unlock()

	if alreadyReported {
		s.logger.WithField("homework", latest.HomeworkName).Debug("Homework status unchanged, nothing to report")
		s.completeCycle(resp.CurrentDate, OutcomeUnchanged, message)
		return
	}

	// A failed delivery must not abort the cycle: log it and move on.
	// There is no retry either, so the record counts as reported.
	if err := s.send(message); err != nil {
		s.logger.WithError(err).Error("Failed to deliver status notification")
	} else {
		s.logger.WithField("homework", latest.HomeworkName).Info("Status notification delivered")
	}

	s.mu.Lock()
	s.lastReported = reportKey
	s.mu.Unlock()
	s.completeCycle(resp.CurrentDate, OutcomeNotified, message)
}

// failCycle handles every error kind uniformly: log, dedupe against the
// previous cycle's error, notify only when the message is new.
func (s *MonitorService) failCycle(err error) {
	var requestErr *practicum.RequestError
	var formatErr *practicum.ResponseFormatError
	var statusErr *homework.UnknownStatusError
	if errors.As(err, &requestErr) || errors.As(err, &formatErr) || errors.As(err, &statusErr) {
		s.logger.WithError(err).Error("Poll cycle failed")
	} else {
		s.logger.WithError(err).Error("Poll cycle failed with an unanticipated error")
	}

	s.mu.Lock()
	isNew := err.Error() != s.lastError
	s.lastError = err.Error()
	s.lastCycleAt = time.Now()
	s.lastOutcome = OutcomeError
	s.mu.Unlock()

	if !isNew {
		s.logger.Debug("Error already reported, suppressing duplicate notification")
		return
	}
	if sendErr := s.send("Сбой в работе программы: " + err.Error()); sendErr != nil {
		s.logger.WithError(sendErr).Error("Failed to deliver error notification")
	}
}

func (s *MonitorService) completeCycle(cursor int64, outcome CycleOutcome, verdict string) {
	s.mu.Lock()
	s.cursor = cursor
	s.lastError = ""
	s.lastCycleAt = time.Now()
	s.lastOutcome = outcome
	if verdict != "" {
		s.lastVerdict = verdict
	}
	s.mu.Unlock()
}

func (s *MonitorService) send(text string) error {
	return s.telegram.SendMessage(s.chatID, text, nil)
}

// Snapshot returns the current monitor state.
func (s *MonitorService) Snapshot() MonitorSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MonitorSnapshot{
		Cursor:      s.cursor,
		LastCycleAt: s.lastCycleAt,
		LastOutcome: s.lastOutcome,
		LastVerdict: s.lastVerdict,
		LastError:   s.lastError,
	}
}

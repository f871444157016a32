package log

import (
	"github.com/google/uuid"

	"github.com/mash-protocol/objwatch/pkg/model"
)

// Recorder turns notifications into Events stamped with a session id.
type Recorder struct {
	logger    Logger
	sessionID string
}

// NewRecorder creates a Recorder with a fresh session id. A nil logger
// discards everything.
func NewRecorder(logger Logger) *Recorder {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Recorder{
		logger:    logger,
		sessionID: uuid.NewString(),
	}
}

// SessionID returns the id stamped on every recorded event.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Record logs n.
func (r *Recorder) Record(n model.Notification) {
	r.logger.Log(r.event(n))
}

// RecordFailure logs n together with the error an observer returned for it.
func (r *Recorder) RecordFailure(n model.Notification, context string, err error) {
	event := r.event(n)
	event.Error = &ErrorData{Message: err.Error(), Context: context}
	r.logger.Log(event)
}

// Callback returns a model.Callback that records every notification and
// never fails.
func (r *Recorder) Callback() model.Callback {
	return func(n model.Notification) error {
		r.Record(n)
		return nil
	}
}

func (r *Recorder) event(n model.Notification) Event {
	event := FromNotification(n)
	event.SessionID = r.sessionID
	return event
}

// Callback returns a model.Callback that records notifications to logger
// under a new session.
func Callback(logger Logger) model.Callback {
	return NewRecorder(logger).Callback()
}

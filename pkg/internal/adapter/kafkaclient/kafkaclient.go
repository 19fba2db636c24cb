// Package kafkaclient publishes job lifecycle events to a Kafka topic.
package kafkaclient

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
	"github.com/joeydtaylor/exametl/pkg/internal/utils"
)

// Event types carried in the "event" header.
const (
	EventJobStarted  = "JOB_STARTED"
	EventJobFinished = "JOB_FINISHED"
)

// MessageWriter is the subset of *kafka.Writer used by the listener.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StepEvent mirrors types.StepExecution on the wire.
type StepEvent struct {
	Name              string `json:"name"`
	Read              int    `json:"read"`
	Filtered          int    `json:"filtered"`
	Written           int    `json:"written"`
	Commits           int    `json:"commits"`
	Rollbacks         int    `json:"rollbacks"`
	LastCommittedLine int    `json:"lastCommittedLine"`
}

// JobEvent is the JSON payload of every message.
type JobEvent struct {
	Event      string     `json:"event"`
	RunID      string     `json:"runId"`
	Job        string     `json:"job"`
	Status     string     `json:"status"`
	Cause      string     `json:"cause,omitempty"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	DurationMs int64      `json:"durationMs,omitempty"`
	Step       *StepEvent `json:"step,omitempty"`
}

// EventListener is a types.JobListener that writes one message per lifecycle callback.
// Delivery failures are logged and never fail the run.
type EventListener struct {
	componentMetadata types.ComponentMetadata
	writer            MessageWriter
	timeout           time.Duration

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewEventListener creates a listener writing through w.
func NewEventListener(w MessageWriter, options ...types.Option[*EventListener]) *EventListener {
	l := &EventListener{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "KAFKA_EVENT_LISTENER",
		},
		writer:  w,
		timeout: 10 * time.Second,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// NewWriter returns a synchronous kafka-go writer for topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  strings.TrimSpace(topic),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}
}

// GetComponentMetadata returns the metadata.
func (l *EventListener) GetComponentMetadata() types.ComponentMetadata {
	return l.componentMetadata
}

// BeforeJob emits JOB_STARTED.
func (l *EventListener) BeforeJob(ctx context.Context, exec *types.JobExecution) {
	l.emit(ctx, EventJobStarted, JobEvent{
		Event:     EventJobStarted,
		RunID:     exec.RunID,
		Job:       exec.JobName,
		Status:    string(exec.Status),
		StartTime: exec.StartTime,
	})
}

// AfterJob emits JOB_FINISHED with the final status and step counters.
func (l *EventListener) AfterJob(ctx context.Context, exec *types.JobExecution) {
	end := exec.EndTime
	ev := JobEvent{
		Event:      EventJobFinished,
		RunID:      exec.RunID,
		Job:        exec.JobName,
		Status:     string(exec.Status),
		StartTime:  exec.StartTime,
		EndTime:    &end,
		DurationMs: exec.Duration().Milliseconds(),
		Step: &StepEvent{
			Name:              exec.Step.Name,
			Read:              exec.Step.ReadCount,
			Filtered:          exec.Step.FilterCount,
			Written:           exec.Step.WriteCount,
			Commits:           exec.Step.CommitCount,
			Rollbacks:         exec.Step.RollbackCount,
			LastCommittedLine: exec.Step.LastCommittedLine,
		},
	}
	if exec.Cause != nil {
		ev.Cause = exec.Cause.Error()
	}
	l.emit(ctx, EventJobFinished, ev)
}

// Close closes the underlying writer.
func (l *EventListener) Close() error {
	if l.writer == nil {
		return nil
	}
	return l.writer.Close()
}

func (l *EventListener) emit(ctx context.Context, event string, payload JobEvent) {
	if l.writer == nil {
		return
	}
	val, err := json.Marshal(payload)
	if err != nil {
		l.notifyFailure(event, payload.RunID, err)
		return
	}

	// The run context may already be cancelled when AfterJob fires.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(payload.RunID),
		Value: val,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event)},
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
	if err := l.writer.WriteMessages(wctx, msg); err != nil {
		l.notifyFailure(event, payload.RunID, err)
		return
	}
	l.NotifyLoggers(types.DebugLevel, "Job event published",
		"component", l.componentMetadata,
		"event", event,
		"result", "SUCCESS",
		"run_id", payload.RunID,
		"bytes", len(val),
	)
}

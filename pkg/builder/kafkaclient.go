package builder

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/exametl/pkg/internal/adapter/kafkaclient"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// NewKafkaEventListener creates a job listener that publishes lifecycle events through w.
func NewKafkaEventListener(w kafkaclient.MessageWriter, options ...types.Option[*kafkaclient.EventListener]) *kafkaclient.EventListener {
	return kafkaclient.NewEventListener(w, options...)
}

// KafkaEventListenerWithLogger attaches loggers.
func KafkaEventListenerWithLogger(l ...types.Logger) types.Option[*kafkaclient.EventListener] {
	return kafkaclient.WithLogger(l...)
}

// KafkaEventListenerWithWriteTimeout bounds each event write.
func KafkaEventListenerWithWriteTimeout(d time.Duration) types.Option[*kafkaclient.EventListener] {
	return kafkaclient.WithWriteTimeout(d)
}

// ---- kafka-go Writer convenience ----

type KafkaGoWriterOption func(*kafka.Writer)

// NewKafkaGoWriter builds a synchronous kafka-go Writer for the given brokers/topic.
func NewKafkaGoWriter(brokers []string, topic string, opts ...KafkaGoWriterOption) *kafka.Writer {
	w := kafkaclient.NewWriter(brokers, topic)
	for _, o := range opts {
		o(w)
	}
	return w
}

func KafkaGoWriterWithRoundRobin() KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.Balancer = &kafka.RoundRobin{} }
}
func KafkaGoWriterWithLeastBytes() KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.Balancer = &kafka.LeastBytes{} }
}
func KafkaGoWriterWithBatchTimeout(d time.Duration) KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.BatchTimeout = d }
}
func KafkaGoWriterWithRequiredAcks(mode string) KafkaGoWriterOption {
	return func(w *kafka.Writer) {
		switch strings.ToLower(mode) {
		case "0", "none":
			w.RequiredAcks = kafka.RequireNone
		case "1", "leader":
			w.RequiredAcks = kafka.RequireOne
		default: // "all", "-1"
			w.RequiredAcks = kafka.RequireAll
		}
	}
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kuropen/elecwarn/internal/config"
	"github.com/kuropen/elecwarn/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes crawl results to a Kafka topic, one message per region.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes every region result of one crawl and writes them in a
// single WriteMessages call. Failed regions are published like successes;
// downstream consumers distinguish them by the error object.
func (w *Writer) Publish(ctx context.Context, report domain.AggregateReport) error {
	if len(report.Results) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(report.Results))
	for i, result := range report.Results {
		msg, err := serializeResult(report.GeneratedAt, result)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeResult marshals a region result into a Kafka message keyed by
// region id, so per-region compaction keeps only the newest state.
func serializeResult(generatedAt time.Time, result domain.RegionResult) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize region result: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(result.Region),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "status", Value: []byte(result.Status().String())},
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}

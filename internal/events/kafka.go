package events

import (
	"context"
	"encoding/json"
	"runtime/debug"
	"sync"
	"time"

	"tosipeli/internal/model"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	queueSize    = 100
	writeTimeout = 10 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues lead events and writes them from a single background worker.
// When the queue is full the event is dropped and logged.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger zerolog.Logger
	jobs   chan kafka.Message
	wg     sync.WaitGroup
	once   sync.Once
}

func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: writeTimeout,
		ReadTimeout:  writeTimeout,
	}
	return newKafkaPublisher(writer, topic, logger)
}

func newKafkaPublisher(writer messageWriter, topic string, logger zerolog.Logger) *KafkaPublisher {
	p := &KafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger.With().Str("component", "lead-publisher").Logger(),
		jobs:   make(chan kafka.Message, queueSize),
	}

	p.wg.Add(1)
	go p.worker()

	return p
}

func (p *KafkaPublisher) PublishLead(_ context.Context, lead model.LeadEvent) {
	value, err := json.Marshal(lead)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to marshal lead event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(lead.AccountID),
		Value: value,
		Time:  lead.CreatedAt,
	}

	select {
	case p.jobs <- msg:
	default:
		p.logger.Warn().Str("account_id", lead.AccountID).Msg("lead queue full, event dropped")
	}
}

func (p *KafkaPublisher) worker() {
	defer p.wg.Done()
	for msg := range p.jobs {
		p.write(msg)
	}
}

func (p *KafkaPublisher) write(msg kafka.Message) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("recovered panic in lead publisher")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error().Err(err).Str("topic", p.topic).Str("key", string(msg.Key)).Msg("failed to publish lead")
		return
	}
	p.logger.Debug().Str("topic", p.topic).Str("key", string(msg.Key)).Msg("lead published")
}

// Close drains the queue and closes the writer
func (p *KafkaPublisher) Close() error {
	var err error
	p.once.Do(func() {
		close(p.jobs)
		p.wg.Wait()
		err = p.writer.Close()
	})
	return err
}

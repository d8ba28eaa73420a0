package env

import (
	"os"

	"tosipeli/internal/config"
)

const (
	kafkaBrokersEnvName   = "KAFKA_BROKERS"
	kafkaLeadTopicEnvName = "KAFKA_LEAD_TOPIC"
	defaultLeadTopic      = "tosipeli.leads"
)

type kafkaConfig struct {
	brokers   []string
	leadTopic string
}

func NewKafkaConfig() (config.KafkaConfig, error) {
	return &kafkaConfig{
		brokers:   splitList(os.Getenv(kafkaBrokersEnvName)),
		leadTopic: getOr(kafkaLeadTopicEnvName, defaultLeadTopic),
	}, nil
}

func (cfg *kafkaConfig) Enabled() bool {
	return len(cfg.brokers) > 0
}

func (cfg *kafkaConfig) Brokers() []string {
	return cfg.brokers
}

func (cfg *kafkaConfig) LeadTopic() string {
	return cfg.leadTopic
}

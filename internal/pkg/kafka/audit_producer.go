package kafka

import (
	"Followdesk/internal/api/config"
	"Followdesk/internal/model"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const defaultAuditTopic = "followdesk.audit"

// AuditEvent 审计事件消息体
type AuditEvent struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"user_id"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	IPAddress string `json:"ip_address"`
	Timestamp int64  `json:"timestamp"`
}

// AuditProducer 将审计日志投递到 Kafka，按 user_id 分区保证同一用户有序
type AuditProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewAuditProducer(cfg config.KafkaConfig, topic string) (*AuditProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "create kafka producer")
	}
	return NewAuditProducerWith(producer, topic), nil
}

// NewAuditProducerWith 使用已有的 SyncProducer
func NewAuditProducerWith(producer sarama.SyncProducer, topic string) *AuditProducer {
	if topic == "" {
		topic = defaultAuditTopic
	}
	return &AuditProducer{producer: producer, topic: topic}
}

func (p *AuditProducer) Name() string {
	return "kafka"
}

func (p *AuditProducer) Mirror(ctx context.Context, entry *model.AuditLog) error {
	payload, err := json.Marshal(&AuditEvent{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Action:    entry.Action,
		Details:   entry.Details,
		IPAddress: entry.IPAddress,
		Timestamp: entry.Timestamp.UnixMilli(),
	})
	if err != nil {
		return errors.Wrap(err, "marshal audit event")
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(entry.UserID, 10)),
		Value: sarama.ByteEncoder(payload),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrapf(err, "send audit event %d", entry.ID)
	}
	log.DebugContext(ctx, "audit event sent", "topic", p.topic, "partition", partition, "offset", offset)
	return nil
}

func (p *AuditProducer) Close() error {
	return p.producer.Close()
}

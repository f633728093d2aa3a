package kafka

import (
	"Followdesk/internal/model"
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditProducerSendsKeyedEvent(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var evt AuditEvent
		if err := json.Unmarshal(val, &evt); err != nil {
			return err
		}
		assert.Equal(t, "SUBMIT_REPORT", evt.Action)
		assert.Equal(t, uint64(3), evt.UserID)
		return nil
	})

	p := NewAuditProducerWith(mock, "")
	err := p.Mirror(context.Background(), &model.AuditLog{
		ID:        1,
		UserID:    3,
		Action:    "SUBMIT_REPORT",
		Details:   "Report for acc: 10",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "kafka", p.Name())
	require.NoError(t, p.Close())
}

func TestAuditProducerPropagatesSendFailure(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewAuditProducerWith(mock, "audit")
	err := p.Mirror(context.Background(), &model.AuditLog{ID: 2, UserID: 1, Timestamp: time.Now()})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

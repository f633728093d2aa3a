package mongo

import (
	"Followdesk/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const auditCollection = "audit_logs"

// AuditLogDoc 审计日志镜像文档，SQLID 对应关系库主键
type AuditLogDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SQLID     uint64             `bson:"sql_id"`
	UserID    uint64             `bson:"user_id"`
	Action    string             `bson:"action"`
	Details   string             `bson:"details"`
	IPAddress string             `bson:"ip_address"`
	Timestamp time.Time          `bson:"timestamp"`
}

// AuditMirror 把审计日志同步写一份到 mongo
type AuditMirror struct {
	col *mongo.Collection
}

func NewAuditMirror(db *mongo.Database) *AuditMirror {
	return &AuditMirror{col: db.Collection(auditCollection)}
}

// EnsureIndexes 按时间倒序查询用的索引
func (m *AuditMirror) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	return errors.Wrap(err, "create audit indexes")
}

func (m *AuditMirror) Name() string {
	return "mongo"
}

func (m *AuditMirror) Mirror(ctx context.Context, entry *model.AuditLog) error {
	doc := &AuditLogDoc{
		SQLID:     entry.ID,
		UserID:    entry.UserID,
		Action:    entry.Action,
		Details:   entry.Details,
		IPAddress: entry.IPAddress,
		Timestamp: entry.Timestamp,
	}
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		return errors.Wrapf(err, "mirror audit log %d", entry.ID)
	}
	return nil
}

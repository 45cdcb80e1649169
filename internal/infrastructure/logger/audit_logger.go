package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// InjectionAttemptRecord is one row of the submission audit trail. Unlike the
// kafka events it survives broker outages and is queryable in place.
type InjectionAttemptRecord struct {
	ID          uint   `gorm:"primaryKey"`
	OrderID     string `gorm:"index"`
	LeadID      string `gorm:"index"`
	LeadType    string
	Success     bool
	FinalDomain string
	BrokerID    string
	ProxyID     string
	Duration    int64 // milliseconds
	Error       string
	Timestamp   time.Time `gorm:"index"`
}

type InjectionAuditLogger interface {
	LogAttempt(ctx context.Context, record InjectionAttemptRecord) error
}

type PGInjectionAuditLogger struct {
	db *gorm.DB
}

func NewPGInjectionAuditLogger(db *gorm.DB) *PGInjectionAuditLogger {
	db.AutoMigrate(&InjectionAttemptRecord{})
	return &PGInjectionAuditLogger{db: db}
}

func (l *PGInjectionAuditLogger) LogAttempt(ctx context.Context, record InjectionAttemptRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	return l.db.WithContext(ctx).Create(&record).Error
}

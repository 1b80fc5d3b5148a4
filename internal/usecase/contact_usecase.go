package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/metrics"
	"github.com/yourusername/deep-coffee/internal/validation"
)

// DefaultContactDelay simulyatsiya qilingan yuborish vaqti
const DefaultContactDelay = 1500 * time.Millisecond

// ContactUseCase aloqa formasi
type ContactUseCase interface {
	// Send tekshiradi va delay dan keyin onDelivered ni chaqiradi.
	// Noto'g'ri bo'lsa *entity.ValidationError. Katalogga ta'sir qilmaydi.
	Send(ctx context.Context, msg entity.ContactMessage, onDelivered func(entity.ContactMessage)) error
}

type contactUseCase struct {
	rules   *validation.Rules
	delay   time.Duration
	now     func() time.Time
	metrics *metrics.Recorder
	log     *logrus.Logger
}

// NewContactUseCase delay <= 0 bo'lsa DefaultContactDelay
func NewContactUseCase(rules *validation.Rules, delay time.Duration, recorder *metrics.Recorder, logger *logrus.Logger) ContactUseCase {
	if delay <= 0 {
		delay = DefaultContactDelay
	}
	return &contactUseCase{
		rules:   rules,
		delay:   delay,
		now:     time.Now,
		metrics: recorder,
		log:     logger,
	}
}

// Send xabarni yuborish. Bekor qilib bo'lmaydi.
func (u *contactUseCase) Send(ctx context.Context, msg entity.ContactMessage, onDelivered func(entity.ContactMessage)) error {
	result := u.rules.ValidateContact(msg)
	if !result.Valid() {
		u.log.WithField("fields", result.Fields()).Info("Use Case: contact message rejected")
		u.metrics.Contact(metrics.OutcomeInvalid)
		return &entity.ValidationError{Result: result}
	}

	msg.SentAt = u.now()
	u.log.WithFields(logrus.Fields{"name": msg.Name, "email": msg.Email}).Info("Use Case: contact message accepted")

	time.AfterFunc(u.delay, func() {
		u.metrics.Contact(metrics.OutcomeDelivered)
		if onDelivered != nil {
			onDelivered(msg)
		}
	})
	return nil
}

package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-shortlink/common/errs"
	"go-shortlink/common/events"

	"github.com/google/uuid"
	"github.com/zeromicro/go-queue/kq"
	"github.com/zeromicro/go-zero/core/logx"
)

const defaultSendTimeout = 2 * time.Second

// kqPusher is the slice of kq.Pusher the producer depends on.
type kqPusher interface {
	KPush(ctx context.Context, k, v string) error
}

var _ kqPusher = (*kq.Pusher)(nil)

// StatsSaveProducer publishes one ClickEvent per redirect. Each send gets a
// fresh correlation key, carried both in the payload and as the Kafka message
// key so the broker can index it.
type StatsSaveProducer struct {
	pusher  kqPusher
	timeout time.Duration
}

// NewStatsSaveProducer creates a producer on top of a Kafka pusher.
func NewStatsSaveProducer(pusher *kq.Pusher) *StatsSaveProducer {
	return &StatsSaveProducer{pusher: pusher, timeout: defaultSendTimeout}
}

// Send publishes the event synchronously within a bounded timeout.
//
// No retry happens at this layer. A failed send returns an error wrapping
// errs.ErrDeliveryFailure; the redirect path logs it and moves on, since
// losing one click beats delaying the user.
func (p *StatsSaveProducer) Send(ctx context.Context, event *events.ClickEvent) error {
	event.CorrelationKey = uuid.NewString()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal click event: %v", errs.ErrDeliveryFailure, err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.pusher.KPush(sendCtx, event.CorrelationKey, string(payload)); err != nil {
		logx.WithContext(ctx).Errorw("click event delivery failed",
			logx.Field("correlation_key", event.CorrelationKey),
			logx.Field("full_short_url", event.FullShortURL),
			logx.Field("error", err.Error()),
		)
		return fmt.Errorf("%w: %v", errs.ErrDeliveryFailure, err)
	}

	logx.WithContext(ctx).Infow("click event published",
		logx.Field("correlation_key", event.CorrelationKey),
		logx.Field("full_short_url", event.FullShortURL),
	)
	return nil
}

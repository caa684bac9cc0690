package mqs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-shortlink/common/errs"
	"go-shortlink/common/events"
	"go-shortlink/common/lock"
	linkmodel "go-shortlink/services/link-api/model"
	"go-shortlink/services/stats-consumer/internal/locale"
	"go-shortlink/services/stats-consumer/internal/svc"
	"go-shortlink/services/stats-consumer/model"

	"github.com/samber/lo"
	"github.com/zeromicro/go-zero/core/logx"
)

// StatsSaveConsumer turns one click event into the full set of aggregate
// increments: time bucket, locale, four single-valued dimensions, raw access
// log, running totals and the daily rollup.
//
// All increments are additive upserts with no shared transaction, so the
// idempotency ledger provides the apply-once guarantee: claim on entry, mark
// done on commit, clear on failure so the broker's redelivery reprocesses
// the whole event.
type StatsSaveConsumer struct {
	svcCtx *svc.ServiceContext
}

func NewStatsSaveConsumer(ctx context.Context, svcCtx *svc.ServiceContext) *StatsSaveConsumer {
	return &StatsSaveConsumer{
		svcCtx: svcCtx,
	}
}

// Consume handles one delivery. A nil return acknowledges the message; any
// error forces broker-level redelivery.
func (c *StatsSaveConsumer) Consume(ctx context.Context, key, val string) error {
	var event events.ClickEvent
	if err := json.Unmarshal([]byte(val), &event); err != nil {
		logx.WithContext(ctx).Errorf("failed to unmarshal click event: %v", err)
		return nil // Don't retry malformed messages
	}

	corrKey := event.CorrelationKey
	if corrKey == "" {
		// Older producers only set the Kafka message key.
		corrKey = key
	}
	if corrKey == "" {
		logx.WithContext(ctx).Errorw("click event without correlation key dropped",
			logx.Field("full_short_url", event.FullShortURL))
		return nil
	}

	claimed, err := c.svcCtx.Ledger.TryClaim(ctx, corrKey)
	if err != nil {
		return fmt.Errorf("idempotent claim: %w", err)
	}
	if !claimed {
		done, err := c.svcCtx.Ledger.IsDone(ctx, corrKey)
		if err != nil {
			return fmt.Errorf("idempotent check: %w", err)
		}
		if done {
			logx.WithContext(ctx).Infow("duplicate click event, skipping",
				logx.Field("correlation_key", corrKey))
			return nil
		}
		// Another delivery of this key is mid-flight; push back on the
		// broker instead of racing it.
		logx.WithContext(ctx).Infow("click event still in flight, forcing retry",
			logx.Field("correlation_key", corrKey))
		return errs.ErrDuplicateInFlight
	}

	if err := c.saveStats(ctx, &event); err != nil {
		if errors.Is(err, errs.ErrUnresolvedLink) {
			// Fatal per event: no amount of redelivery will grow a group
			// mapping, so record it as done and drop.
			logx.WithContext(ctx).Errorw("click event dropped, link unresolved",
				logx.Field("correlation_key", corrKey),
				logx.Field("full_short_url", event.FullShortURL),
			)
			if mdErr := c.svcCtx.Ledger.MarkDone(ctx, corrKey); mdErr != nil {
				logx.WithContext(ctx).Errorf("failed to mark dropped event done: %v", mdErr)
			}
			return nil
		}

		logx.WithContext(ctx).Errorw("click stats processing failed",
			logx.Field("correlation_key", corrKey),
			logx.Field("full_short_url", event.FullShortURL),
			logx.Field("error", err.Error()),
		)
		if clearErr := c.svcCtx.Ledger.Clear(ctx, corrKey); clearErr != nil {
			logx.WithContext(ctx).Errorf("failed to clear idempotent record: %v", clearErr)
		}
		return err
	}

	return c.svcCtx.Ledger.MarkDone(ctx, corrKey)
}

// saveStats applies the eight aggregate increments plus the access-log row
// under the read side of the gid-update lock, so none of them can race a
// concurrent group rebind of the same link.
func (c *StatsSaveConsumer) saveStats(ctx context.Context, event *events.ClickEvent) error {
	fullShortUrl := event.FullShortURL
	record := event.Record

	gid := event.Gid
	if gid == "" {
		gotoRec, err := c.svcCtx.LinkGotoModel.FindOneByFullShortUrl(ctx, fullShortUrl)
		if err != nil {
			if errors.Is(err, linkmodel.ErrNotFound) {
				return fmt.Errorf("%w: %s", errs.ErrUnresolvedLink, fullShortUrl)
			}
			return fmt.Errorf("resolve gid: %w", err)
		}
		gid = gotoRec.Gid
	}

	mu := c.svcCtx.Locks.ReadWrite(lock.GidUpdateKey(fullShortUrl))
	acquireTimeout := time.Duration(c.svcCtx.Config.Lock.AcquireTimeoutMillis) * time.Millisecond
	if acquireTimeout <= 0 {
		acquireTimeout = 3 * time.Second
	}
	lockCtx, cancel := context.WithTimeout(ctx, acquireTimeout)
	defer cancel()
	if err := mu.RLock(lockCtx); err != nil {
		return err
	}
	// Release with a fresh context: a canceled consumer context must not
	// leave the reader count dangling until the lease expires.
	defer func() {
		if err := mu.RUnlock(context.Background()); err != nil {
			logx.WithContext(ctx).Errorf("failed to release gid-update read lock: %v", err)
		}
	}()

	now := time.Now()
	date := dateOf(now)
	uv := int64(lo.Ternary(record.UVFirstFlag, 1, 0))
	uip := int64(lo.Ternary(record.UIPFirstFlag, 1, 0))

	if err := c.svcCtx.AccessStatsModel.IncrementStats(ctx, &model.LinkAccessStats{
		FullShortUrl: fullShortUrl,
		Gid:          gid,
		Date:         date,
		Hour:         now.Hour(),
		Weekday:      isoWeekday(now),
		Pv:           1,
		Uv:           uv,
		Uip:          uip,
	}); err != nil {
		return fmt.Errorf("access stats: %w", err)
	}

	loc := c.resolveLocale(ctx, record.RemoteAddr)
	if err := c.svcCtx.LocaleStatsModel.IncrementStats(ctx, &model.LinkLocaleStats{
		FullShortUrl: fullShortUrl,
		Gid:          gid,
		Date:         date,
		Country:      loc.Country,
		Province:     loc.Province,
		City:         loc.City,
		Adcode:       loc.Adcode,
		Cnt:          1,
	}); err != nil {
		return fmt.Errorf("locale stats: %w", err)
	}

	dimensions := []struct {
		name  string
		store model.LinkDimensionStatsModel
		value string
	}{
		{"os", c.svcCtx.OsStatsModel, record.OS},
		{"browser", c.svcCtx.BrowserStatsModel, record.Browser},
		{"device", c.svcCtx.DeviceStatsModel, record.Device},
		{"network", c.svcCtx.NetworkStatsModel, record.Network},
	}
	for _, dim := range dimensions {
		if err := dim.store.IncrementStats(ctx, &model.LinkDimensionStats{
			FullShortUrl: fullShortUrl,
			Gid:          gid,
			Date:         date,
			Value:        bucketOrUnknown(dim.value),
			Cnt:          1,
		}); err != nil {
			return fmt.Errorf("%s stats: %w", dim.name, err)
		}
	}

	if err := c.svcCtx.AccessLogsModel.Insert(ctx, &model.LinkAccessLogs{
		FullShortUrl: fullShortUrl,
		Gid:          gid,
		User:         record.UV,
		Ip:           record.RemoteAddr,
		Browser:      bucketOrUnknown(record.Browser),
		Os:           bucketOrUnknown(record.OS),
		Network:      bucketOrUnknown(record.Network),
		Device:       bucketOrUnknown(record.Device),
		Locale:       loc.String(),
	}); err != nil {
		return fmt.Errorf("access log: %w", err)
	}

	if err := c.svcCtx.LinksModel.IncrementStats(ctx, gid, fullShortUrl, 1, int(uv), int(uip)); err != nil {
		return fmt.Errorf("running totals: %w", err)
	}

	if err := c.svcCtx.StatsTodayModel.IncrementStats(ctx, &model.LinkStatsToday{
		FullShortUrl: fullShortUrl,
		Gid:          gid,
		Date:         date,
		TodayPv:      1,
		TodayUv:      uv,
		TodayUip:     uip,
	}); err != nil {
		return fmt.Errorf("today stats: %w", err)
	}

	return nil
}

// resolveLocale is best-effort: any failure degrades to the Unknown bucket.
// It runs inside the read lock, so it gets its own short deadline.
func (c *StatsSaveConsumer) resolveLocale(ctx context.Context, ip string) locale.Locale {
	timeout := time.Duration(c.svcCtx.Config.Locale.TimeoutMillis) * time.Millisecond
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	resolveCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	loc, err := c.svcCtx.LocaleResolver.Resolve(resolveCtx, ip)
	if err != nil {
		logx.WithContext(ctx).Infow("locale lookup degraded to Unknown",
			logx.Field("ip", ip), logx.Field("error", err.Error()))
		return locale.Unknown
	}
	return loc
}

// dateOf truncates to the statistical day.
func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// isoWeekday maps Sunday=0..Saturday=6 onto ISO-8601 Monday=1..Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func bucketOrUnknown(v string) string {
	if v == "" {
		return locale.UnknownValue
	}
	return v
}

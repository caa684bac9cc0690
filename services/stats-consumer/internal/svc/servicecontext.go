package svc

import (
	"time"

	"go-shortlink/common/lock"
	linkmodel "go-shortlink/services/link-api/model"
	"go-shortlink/services/stats-consumer/internal/config"
	"go-shortlink/services/stats-consumer/internal/idempotent"
	"go-shortlink/services/stats-consumer/internal/locale"
	"go-shortlink/services/stats-consumer/model"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type ServiceContext struct {
	Config config.Config

	Ledger         idempotent.Ledger
	Locks          lock.Factory
	LocaleResolver locale.Resolver

	LinksModel    linkmodel.LinksModel
	LinkGotoModel linkmodel.LinkGotoModel

	AccessStatsModel  model.LinkAccessStatsModel
	LocaleStatsModel  model.LinkLocaleStatsModel
	OsStatsModel      model.LinkDimensionStatsModel
	BrowserStatsModel model.LinkDimensionStatsModel
	DeviceStatsModel  model.LinkDimensionStatsModel
	NetworkStatsModel model.LinkDimensionStatsModel
	StatsTodayModel   model.LinkStatsTodayModel
	AccessLogsModel   model.LinkAccessLogsModel
}

func NewServiceContext(c config.Config) *ServiceContext {
	conn := sqlx.NewSqlConn("postgres", c.DataSource)

	db, err := conn.RawDB()
	logx.Must(err)
	db.SetMaxOpenConns(c.Pool.MaxOpenConns)
	db.SetMaxIdleConns(c.Pool.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(c.Pool.ConnMaxLifetime) * time.Second)
	logx.Infof("Connection pool configured: MaxOpen=%d, MaxIdle=%d, MaxLifetime=%ds",
		c.Pool.MaxOpenConns, c.Pool.MaxIdleConns, c.Pool.ConnMaxLifetime)

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})

	return &ServiceContext{
		Config: c,
		Ledger: idempotent.NewRedisLedger(rdb, idempotent.Options{
			ClaimTTL: time.Duration(c.Idempotent.ClaimTTLSeconds) * time.Second,
			DoneTTL:  time.Duration(c.Idempotent.DoneTTLSeconds) * time.Second,
		}),
		Locks: lock.NewRedisFactory(rdb, lock.Options{
			LeaseTTL:      time.Duration(c.Lock.LeaseTTLSeconds) * time.Second,
			RetryInterval: time.Duration(c.Lock.RetryIntervalMillis) * time.Millisecond,
		}),
		LocaleResolver: newLocaleResolver(c.Locale),

		LinksModel:    linkmodel.NewLinksModel(conn),
		LinkGotoModel: linkmodel.NewLinkGotoModel(conn),

		AccessStatsModel:  model.NewLinkAccessStatsModel(conn),
		LocaleStatsModel:  model.NewLinkLocaleStatsModel(conn),
		OsStatsModel:      model.NewLinkOsStatsModel(conn),
		BrowserStatsModel: model.NewLinkBrowserStatsModel(conn),
		DeviceStatsModel:  model.NewLinkDeviceStatsModel(conn),
		NetworkStatsModel: model.NewLinkNetworkStatsModel(conn),
		StatsTodayModel:   model.NewLinkStatsTodayModel(conn),
		AccessLogsModel:   model.NewLinkAccessLogsModel(conn),
	}
}

// newLocaleResolver picks the lookup backend: HTTP API when a key is
// configured, local GeoIP database as the offline alternative, Unknown
// buckets otherwise.
func newLocaleResolver(c config.LocaleConf) locale.Resolver {
	timeout := time.Duration(c.TimeoutMillis) * time.Millisecond

	if c.AmapKey != "" {
		return locale.NewAmapResolver(c.AmapKey, c.AmapURL, timeout)
	}
	if c.GeoIPPath != "" {
		r, err := locale.NewGeoIPResolver(c.GeoIPPath)
		if err != nil {
			logx.Infof("GeoIP database not available at %s, falling back to Unknown", c.GeoIPPath)
			return locale.NoopResolver{}
		}
		return r
	}
	logx.Info("No locale backend configured, all visitors bucket as Unknown")
	return locale.NoopResolver{}
}

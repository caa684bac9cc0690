package svc

import (
	"context"
	"time"

	"go-shortlink/common/events"
	"go-shortlink/common/lock"
	"go-shortlink/services/link-api/internal/config"
	"go-shortlink/services/link-api/internal/mq"
	"go-shortlink/services/link-api/model"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/zeromicro/go-queue/kq"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// ClickEventProducer is the redirect path's view of the stats producer.
type ClickEventProducer interface {
	Send(ctx context.Context, event *events.ClickEvent) error
}

type ServiceContext struct {
	Config        config.Config
	Rdb           *redis.Client
	LinksModel    model.LinksModel
	LinkGotoModel model.LinkGotoModel
	StatsProducer ClickEventProducer
	Locks         lock.Factory
}

func NewServiceContext(c config.Config) *ServiceContext {
	conn := sqlx.NewSqlConn("postgres", c.DataSource)

	db, err := conn.RawDB()
	logx.Must(err)
	db.SetMaxOpenConns(c.Pool.MaxOpenConns)
	db.SetMaxIdleConns(c.Pool.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(c.Pool.ConnMaxLifetime) * time.Second)

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})

	pusher := kq.NewPusher(c.KqPusherConf.Brokers, c.KqPusherConf.Topic)

	return &ServiceContext{
		Config:        c,
		Rdb:           rdb,
		LinksModel:    model.NewLinksModel(conn),
		LinkGotoModel: model.NewLinkGotoModel(conn),
		StatsProducer: mq.NewStatsSaveProducer(pusher),
		Locks: lock.NewRedisFactory(rdb, lock.Options{
			LeaseTTL:      time.Duration(c.Lock.LeaseTTLSeconds) * time.Second,
			RetryInterval: time.Duration(c.Lock.RetryIntervalMillis) * time.Millisecond,
		}),
	}
}

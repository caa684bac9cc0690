package config

import (
	"github.com/zeromicro/go-queue/kq"
	"github.com/zeromicro/go-zero/core/service"
)

type Config struct {
	service.ServiceConf
	DataSource      string
	Pool            PoolConfig
	KqConsumerConf  kq.KqConf
	Redis           RedisConf
	Idempotent      IdempotentConf
	Lock            LockConf
	Locale          LocaleConf
	HealthCheckPort int `json:",default=8101"`
}

type PoolConfig struct {
	MaxOpenConns    int `json:",default=10"`
	MaxIdleConns    int `json:",default=5"`
	ConnMaxLifetime int `json:",default=3600"` // seconds
}

type RedisConf struct {
	Addr     string
	Password string `json:",optional"`
	DB       int    `json:",default=0"`
}

type IdempotentConf struct {
	ClaimTTLSeconds int `json:",default=120"`
	DoneTTLSeconds  int `json:",default=86400"`
}

type LockConf struct {
	LeaseTTLSeconds      int `json:",default=30"`
	AcquireTimeoutMillis int `json:",default=3000"`
	RetryIntervalMillis  int `json:",default=50"`
}

type LocaleConf struct {
	AmapKey       string `json:",optional"`
	AmapURL       string `json:",optional"`
	GeoIPPath     string `json:",optional"`
	TimeoutMillis int    `json:",default=500"`
}

package config

import "github.com/zeromicro/go-zero/rest"

type Config struct {
	rest.RestConf
	BaseUrl      string
	DataSource   string
	Pool         PoolConfig
	Redis        RedisConf
	KqPusherConf KqPusherConf
	Lock         LockConf
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

type KqPusherConf struct {
	Brokers []string
	Topic   string
}

type LockConf struct {
	LeaseTTLSeconds      int `json:",default=30"`
	AcquireTimeoutMillis int `json:",default=3000"`
	RetryIntervalMillis  int `json:",default=50"`
}

package model

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ LinkAccessStatsModel = (*defaultLinkAccessStatsModel)(nil)

type (
	// LinkAccessStatsModel is the time-dimension aggregate: one row per
	// (link, gid, day, hour). All writes are additive upserts so replays
	// commute.
	LinkAccessStatsModel interface {
		IncrementStats(ctx context.Context, data *LinkAccessStats) error
		FindOne(ctx context.Context, fullShortUrl, gid string, date time.Time, hour int) (*LinkAccessStats, error)
	}

	LinkAccessStats struct {
		Id           int64     `db:"id"`
		FullShortUrl string    `db:"full_short_url"`
		Gid          string    `db:"gid"`
		Date         time.Time `db:"date"`
		Hour         int       `db:"hour"`
		Weekday      int       `db:"weekday"`
		Pv           int64     `db:"pv"`
		Uv           int64     `db:"uv"`
		Uip          int64     `db:"uip"`
	}

	defaultLinkAccessStatsModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewLinkAccessStatsModel returns a model for the database table.
func NewLinkAccessStatsModel(conn sqlx.SqlConn) LinkAccessStatsModel {
	return &defaultLinkAccessStatsModel{conn: conn, table: "t_link_access_stats"}
}

func (m *defaultLinkAccessStatsModel) IncrementStats(ctx context.Context, data *LinkAccessStats) error {
	query := fmt.Sprintf(`INSERT INTO %s (full_short_url, gid, date, hour, weekday, pv, uv, uip)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (full_short_url, gid, date, hour)
DO UPDATE SET pv = %s.pv + EXCLUDED.pv, uv = %s.uv + EXCLUDED.uv, uip = %s.uip + EXCLUDED.uip`,
		m.table, m.table, m.table, m.table)
	_, err := m.conn.ExecCtx(ctx, query,
		data.FullShortUrl, data.Gid, data.Date, data.Hour, data.Weekday,
		data.Pv, data.Uv, data.Uip)
	return err
}

func (m *defaultLinkAccessStatsModel) FindOne(ctx context.Context, fullShortUrl, gid string, date time.Time, hour int) (*LinkAccessStats, error) {
	query := fmt.Sprintf(
		"SELECT id, full_short_url, gid, date, hour, weekday, pv, uv, uip FROM %s WHERE full_short_url = $1 AND gid = $2 AND date = $3 AND hour = $4 LIMIT 1",
		m.table)
	var resp LinkAccessStats
	err := m.conn.QueryRowCtx(ctx, &resp, query, fullShortUrl, gid, date, hour)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

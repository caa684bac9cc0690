package model

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ LinkStatsTodayModel = (*defaultLinkStatsTodayModel)(nil)

type (
	// LinkStatsTodayModel is the daily rollup: one row per (link, gid, day).
	LinkStatsTodayModel interface {
		IncrementStats(ctx context.Context, data *LinkStatsToday) error
	}

	LinkStatsToday struct {
		Id           int64     `db:"id"`
		FullShortUrl string    `db:"full_short_url"`
		Gid          string    `db:"gid"`
		Date         time.Time `db:"date"`
		TodayPv      int64     `db:"today_pv"`
		TodayUv      int64     `db:"today_uv"`
		TodayUip     int64     `db:"today_uip"`
	}

	defaultLinkStatsTodayModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewLinkStatsTodayModel returns a model for the database table.
func NewLinkStatsTodayModel(conn sqlx.SqlConn) LinkStatsTodayModel {
	return &defaultLinkStatsTodayModel{conn: conn, table: "t_link_stats_today"}
}

func (m *defaultLinkStatsTodayModel) IncrementStats(ctx context.Context, data *LinkStatsToday) error {
	query := fmt.Sprintf(`INSERT INTO %s (full_short_url, gid, date, today_pv, today_uv, today_uip)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (full_short_url, gid, date)
DO UPDATE SET today_pv = %s.today_pv + EXCLUDED.today_pv, today_uv = %s.today_uv + EXCLUDED.today_uv, today_uip = %s.today_uip + EXCLUDED.today_uip`,
		m.table, m.table, m.table, m.table)
	_, err := m.conn.ExecCtx(ctx, query,
		data.FullShortUrl, data.Gid, data.Date,
		data.TodayPv, data.TodayUv, data.TodayUip)
	return err
}

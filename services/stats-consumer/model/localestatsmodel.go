package model

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ LinkLocaleStatsModel = (*defaultLinkLocaleStatsModel)(nil)

type (
	// LinkLocaleStatsModel is the geography aggregate. Unresolvable visitors
	// land in the Unknown bucket rather than being dropped.
	LinkLocaleStatsModel interface {
		IncrementStats(ctx context.Context, data *LinkLocaleStats) error
	}

	LinkLocaleStats struct {
		Id           int64     `db:"id"`
		FullShortUrl string    `db:"full_short_url"`
		Gid          string    `db:"gid"`
		Date         time.Time `db:"date"`
		Country      string    `db:"country"`
		Province     string    `db:"province"`
		City         string    `db:"city"`
		Adcode       string    `db:"adcode"`
		Cnt          int64     `db:"cnt"`
	}

	defaultLinkLocaleStatsModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewLinkLocaleStatsModel returns a model for the database table.
func NewLinkLocaleStatsModel(conn sqlx.SqlConn) LinkLocaleStatsModel {
	return &defaultLinkLocaleStatsModel{conn: conn, table: "t_link_locale_stats"}
}

func (m *defaultLinkLocaleStatsModel) IncrementStats(ctx context.Context, data *LinkLocaleStats) error {
	query := fmt.Sprintf(`INSERT INTO %s (full_short_url, gid, date, country, province, city, adcode, cnt)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (full_short_url, gid, date, country, province, city)
DO UPDATE SET cnt = %s.cnt + EXCLUDED.cnt`, m.table, m.table)
	_, err := m.conn.ExecCtx(ctx, query,
		data.FullShortUrl, data.Gid, data.Date,
		data.Country, data.Province, data.City, data.Adcode, data.Cnt)
	return err
}

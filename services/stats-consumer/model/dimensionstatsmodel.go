package model

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ LinkDimensionStatsModel = (*defaultLinkDimensionStatsModel)(nil)

type (
	// LinkDimensionStatsModel serves the four single-valued dimensions
	// (os, browser, device, network). The tables are structurally identical,
	// so one model type parameterized by table and column covers all of them.
	LinkDimensionStatsModel interface {
		IncrementStats(ctx context.Context, data *LinkDimensionStats) error
		// SumCnt totals the dimension's counters for one link and day, used
		// to check the cross-table sum invariant against the time aggregate.
		SumCnt(ctx context.Context, fullShortUrl string, date time.Time) (int64, error)
	}

	LinkDimensionStats struct {
		FullShortUrl string
		Gid          string
		Date         time.Time
		Value        string // the dimension bucket, e.g. "Chrome" or "WIFI"
		Cnt          int64
	}

	defaultLinkDimensionStatsModel struct {
		conn   sqlx.SqlConn
		table  string
		column string
	}
)

// NewLinkOsStatsModel returns the operating-system dimension model.
func NewLinkOsStatsModel(conn sqlx.SqlConn) LinkDimensionStatsModel {
	return newLinkDimensionStatsModel(conn, "t_link_os_stats", "os")
}

// NewLinkBrowserStatsModel returns the browser dimension model.
func NewLinkBrowserStatsModel(conn sqlx.SqlConn) LinkDimensionStatsModel {
	return newLinkDimensionStatsModel(conn, "t_link_browser_stats", "browser")
}

// NewLinkDeviceStatsModel returns the device dimension model.
func NewLinkDeviceStatsModel(conn sqlx.SqlConn) LinkDimensionStatsModel {
	return newLinkDimensionStatsModel(conn, "t_link_device_stats", "device")
}

// NewLinkNetworkStatsModel returns the network dimension model.
func NewLinkNetworkStatsModel(conn sqlx.SqlConn) LinkDimensionStatsModel {
	return newLinkDimensionStatsModel(conn, "t_link_network_stats", "network")
}

func newLinkDimensionStatsModel(conn sqlx.SqlConn, table, column string) LinkDimensionStatsModel {
	return &defaultLinkDimensionStatsModel{conn: conn, table: table, column: column}
}

func (m *defaultLinkDimensionStatsModel) IncrementStats(ctx context.Context, data *LinkDimensionStats) error {
	query := fmt.Sprintf(`INSERT INTO %s (full_short_url, gid, date, %s, cnt)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (full_short_url, gid, date, %s)
DO UPDATE SET cnt = %s.cnt + EXCLUDED.cnt`, m.table, m.column, m.column, m.table)
	_, err := m.conn.ExecCtx(ctx, query,
		data.FullShortUrl, data.Gid, data.Date, data.Value, data.Cnt)
	return err
}

func (m *defaultLinkDimensionStatsModel) SumCnt(ctx context.Context, fullShortUrl string, date time.Time) (int64, error) {
	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(cnt), 0) FROM %s WHERE full_short_url = $1 AND date = $2", m.table)
	var total int64
	err := m.conn.QueryRowCtx(ctx, &total, query, fullShortUrl, date)
	if err != nil {
		return 0, err
	}
	return total, nil
}

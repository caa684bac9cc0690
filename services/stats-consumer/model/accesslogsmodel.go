package model

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ LinkAccessLogsModel = (*defaultLinkAccessLogsModel)(nil)

type (
	// LinkAccessLogsModel is the append-only raw click log.
	LinkAccessLogsModel interface {
		Insert(ctx context.Context, data *LinkAccessLogs) error
		CountByFullShortUrl(ctx context.Context, fullShortUrl string) (int64, error)
	}

	LinkAccessLogs struct {
		Id           int64     `db:"id"`
		FullShortUrl string    `db:"full_short_url"`
		Gid          string    `db:"gid"`
		User         string    `db:"user_id"` // visitor fingerprint
		Ip           string    `db:"ip"`
		Browser      string    `db:"browser"`
		Os           string    `db:"os"`
		Network      string    `db:"network"`
		Device       string    `db:"device"`
		Locale       string    `db:"locale"`
		CreatedAt    time.Time `db:"created_at"`
	}

	defaultLinkAccessLogsModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewLinkAccessLogsModel returns a model for the database table.
func NewLinkAccessLogsModel(conn sqlx.SqlConn) LinkAccessLogsModel {
	return &defaultLinkAccessLogsModel{conn: conn, table: "t_link_access_logs"}
}

func (m *defaultLinkAccessLogsModel) Insert(ctx context.Context, data *LinkAccessLogs) error {
	query := fmt.Sprintf(`INSERT INTO %s (full_short_url, gid, user_id, ip, browser, os, network, device, locale)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, m.table)
	_, err := m.conn.ExecCtx(ctx, query,
		data.FullShortUrl, data.Gid, data.User, data.Ip,
		data.Browser, data.Os, data.Network, data.Device, data.Locale)
	return err
}

func (m *defaultLinkAccessLogsModel) CountByFullShortUrl(ctx context.Context, fullShortUrl string) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE full_short_url = $1", m.table)
	var count int64
	err := m.conn.QueryRowCtx(ctx, &count, query, fullShortUrl)
	if err != nil {
		return 0, err
	}
	return count, nil
}

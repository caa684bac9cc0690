package model

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ LinksModel = (*defaultLinksModel)(nil)

const linksRows = "id, gid, full_short_url, origin_url, total_pv, total_uv, total_uip, created_at, updated_at"

type (
	// LinksModel owns the t_link rows: origin URL for redirects, current
	// group binding, and the per-link running totals.
	LinksModel interface {
		Insert(ctx context.Context, data *Links) error
		FindOneByFullShortUrl(ctx context.Context, fullShortUrl string) (*Links, error)
		// IncrementStats adds to the monotonic running totals. Called by the
		// stats consumer inside the gid-update read lock.
		IncrementStats(ctx context.Context, gid, fullShortUrl string, pv, uv, uip int) error
		// UpdateGid reassigns the link to another group. Callers must hold
		// the gid-update write lock.
		UpdateGid(ctx context.Context, fullShortUrl, gid string) error
	}

	Links struct {
		Id           int64     `db:"id"`
		Gid          string    `db:"gid"`
		FullShortUrl string    `db:"full_short_url"`
		OriginUrl    string    `db:"origin_url"`
		TotalPv      int64     `db:"total_pv"`
		TotalUv      int64     `db:"total_uv"`
		TotalUip     int64     `db:"total_uip"`
		CreatedAt    time.Time `db:"created_at"`
		UpdatedAt    time.Time `db:"updated_at"`
	}

	defaultLinksModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewLinksModel returns a model for the database table.
func NewLinksModel(conn sqlx.SqlConn) LinksModel {
	return &defaultLinksModel{conn: conn, table: "t_link"}
}

func (m *defaultLinksModel) Insert(ctx context.Context, data *Links) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (gid, full_short_url, origin_url) VALUES ($1, $2, $3)", m.table)
	_, err := m.conn.ExecCtx(ctx, query, data.Gid, data.FullShortUrl, data.OriginUrl)
	return err
}

func (m *defaultLinksModel) FindOneByFullShortUrl(ctx context.Context, fullShortUrl string) (*Links, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE full_short_url = $1 LIMIT 1", linksRows, m.table)
	var resp Links
	err := m.conn.QueryRowCtx(ctx, &resp, query, fullShortUrl)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultLinksModel) IncrementStats(ctx context.Context, gid, fullShortUrl string, pv, uv, uip int) error {
	query := fmt.Sprintf(
		"UPDATE %s SET total_pv = total_pv + $1, total_uv = total_uv + $2, total_uip = total_uip + $3, updated_at = now() WHERE gid = $4 AND full_short_url = $5",
		m.table)
	_, err := m.conn.ExecCtx(ctx, query, pv, uv, uip, gid, fullShortUrl)
	return err
}

func (m *defaultLinksModel) UpdateGid(ctx context.Context, fullShortUrl, gid string) error {
	query := fmt.Sprintf("UPDATE %s SET gid = $1, updated_at = now() WHERE full_short_url = $2", m.table)
	_, err := m.conn.ExecCtx(ctx, query, gid, fullShortUrl)
	return err
}

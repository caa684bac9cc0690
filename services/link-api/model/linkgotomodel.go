package model

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ LinkGotoModel = (*defaultLinkGotoModel)(nil)

const linkGotoRows = "id, full_short_url, gid, created_at"

type (
	// LinkGotoModel maps a full short URL to its owning group. The stats
	// consumer uses it to resolve the gid when the event payload omits one.
	LinkGotoModel interface {
		Insert(ctx context.Context, data *LinkGoto) error
		FindOneByFullShortUrl(ctx context.Context, fullShortUrl string) (*LinkGoto, error)
		UpdateGid(ctx context.Context, fullShortUrl, gid string) error
	}

	LinkGoto struct {
		Id           int64     `db:"id"`
		FullShortUrl string    `db:"full_short_url"`
		Gid          string    `db:"gid"`
		CreatedAt    time.Time `db:"created_at"`
	}

	defaultLinkGotoModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewLinkGotoModel returns a model for the database table.
func NewLinkGotoModel(conn sqlx.SqlConn) LinkGotoModel {
	return &defaultLinkGotoModel{conn: conn, table: "t_link_goto"}
}

func (m *defaultLinkGotoModel) Insert(ctx context.Context, data *LinkGoto) error {
	query := fmt.Sprintf("INSERT INTO %s (full_short_url, gid) VALUES ($1, $2)", m.table)
	_, err := m.conn.ExecCtx(ctx, query, data.FullShortUrl, data.Gid)
	return err
}

func (m *defaultLinkGotoModel) FindOneByFullShortUrl(ctx context.Context, fullShortUrl string) (*LinkGoto, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE full_short_url = $1 LIMIT 1", linkGotoRows, m.table)
	var resp LinkGoto
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

func (m *defaultLinkGotoModel) UpdateGid(ctx context.Context, fullShortUrl, gid string) error {
	query := fmt.Sprintf("UPDATE %s SET gid = $1 WHERE full_short_url = $2", m.table)
	_, err := m.conn.ExecCtx(ctx, query, gid, fullShortUrl)
	return err
}

// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package links

import (
	"context"
	"errors"
	"time"

	"go-shortlink/common/errs"
	"go-shortlink/common/lock"
	"go-shortlink/pkg/problemdetails"
	"go-shortlink/services/link-api/internal/svc"
	"go-shortlink/services/link-api/internal/types"
	"go-shortlink/services/link-api/model"

	"github.com/zeromicro/go-zero/core/logx"
)

type RebindLinkLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Reassign a short link to another group
func NewRebindLinkLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RebindLinkLogic {
	return &RebindLinkLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Rebind moves a link's group binding under the exclusive side of the
// gid-update lock, so no stat increment can land on a half-moved binding.
// In-flight increments finish first; new ones wait until both rows agree.
func (l *RebindLinkLogic) Rebind(req *types.RebindLinkRequest) (*types.RebindLinkResponse, error) {
	if _, err := l.svcCtx.LinksModel.FindOneByFullShortUrl(l.ctx, req.FullShortUrl); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, problemdetails.New(404, problemdetails.TypeNotFound, "Not Found",
				"short link '"+req.FullShortUrl+"' not found")
		}
		return nil, err
	}

	mu := l.svcCtx.Locks.ReadWrite(lock.GidUpdateKey(req.FullShortUrl))

	lockCtx, cancel := context.WithTimeout(l.ctx,
		time.Duration(l.svcCtx.Config.Lock.AcquireTimeoutMillis)*time.Millisecond)
	defer cancel()

	if err := mu.Lock(lockCtx); err != nil {
		if errors.Is(err, errs.ErrLockTimeout) {
			return nil, problemdetails.New(503, problemdetails.TypeTooManyRetries, "Busy",
				"link is receiving traffic, retry the rebind shortly")
		}
		return nil, err
	}
	defer func() {
		if err := mu.Unlock(context.Background()); err != nil {
			logx.WithContext(l.ctx).Errorw("failed to release gid-update lock",
				logx.Field("full_short_url", req.FullShortUrl),
				logx.Field("error", err.Error()),
			)
		}
	}()

	if err := l.svcCtx.LinkGotoModel.UpdateGid(l.ctx, req.FullShortUrl, req.Gid); err != nil {
		return nil, err
	}
	if err := l.svcCtx.LinksModel.UpdateGid(l.ctx, req.FullShortUrl, req.Gid); err != nil {
		return nil, err
	}

	logx.WithContext(l.ctx).Infow("link rebound",
		logx.Field("full_short_url", req.FullShortUrl),
		logx.Field("gid", req.Gid),
	)

	return &types.RebindLinkResponse{
		FullShortUrl: req.FullShortUrl,
		Gid:          req.Gid,
	}, nil
}

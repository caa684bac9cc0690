// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package redirect

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"go-shortlink/common/events"
	"go-shortlink/pkg/problemdetails"
	"go-shortlink/services/link-api/internal/svc"
	"go-shortlink/services/link-api/internal/types"
	"go-shortlink/services/link-api/model"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	uvCookieName   = "uv"
	uvCookieMaxAge = int(30 * 24 * time.Hour / time.Second)

	uvSetKeyPrefix  = "short-link:stats:uv:"
	uipSetKeyPrefix = "short-link:stats:uip:"
)

type RedirectLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Redirect to original URL
func NewRedirectLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RedirectLogic {
	return &RedirectLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Redirect resolves the short code to its original URL and publishes a click
// event for the stats pipeline. The publish is synchronous but non-fatal: a
// broker outage loses the click, never the redirect.
func (l *RedirectLogic) Redirect(req *types.RedirectRequest, r *http.Request, w http.ResponseWriter) (string, error) {
	fullShortUrl := l.fullShortURL(req.Code)

	link, err := l.svcCtx.LinksModel.FindOneByFullShortUrl(l.ctx, fullShortUrl)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", problemdetails.New(404, problemdetails.TypeNotFound, "Not Found",
				"short code '"+req.Code+"' not found")
		}
		logx.WithContext(l.ctx).Errorw("failed to find link", logx.Field("error", err.Error()))
		return "", problemdetails.New(500, problemdetails.TypeInternalError, "Internal Error",
			"failed to look up short code")
	}

	record := l.buildStatsRecord(fullShortUrl, r, w)
	event := &events.ClickEvent{
		FullShortURL: fullShortUrl,
		Gid:          link.Gid,
		Record:       record,
	}
	if sendErr := l.svcCtx.StatsProducer.Send(l.ctx, event); sendErr != nil {
		// Stats loss is acceptable, redirect latency is not.
		logx.WithContext(l.ctx).Errorw("click stats dropped",
			logx.Field("full_short_url", fullShortUrl),
			logx.Field("error", sendErr.Error()),
		)
	}

	return link.OriginUrl, nil
}

// buildStatsRecord classifies the visitor and computes the first-visit flags.
// Redis failures downgrade the flags to false instead of failing the redirect.
func (l *RedirectLogic) buildStatsRecord(fullShortUrl string, r *http.Request, w http.ResponseWriter) events.StatsRecord {
	ip := clientIP(r)
	ua := useragent.New(r.UserAgent())

	uv, hadCookie := visitorFingerprint(r)
	if !hadCookie {
		http.SetCookie(w, &http.Cookie{
			Name:   uvCookieName,
			Value:  uv,
			Path:   "/",
			MaxAge: uvCookieMaxAge,
		})
	}

	uvFirst := l.firstVisit(uvSetKeyPrefix+fullShortUrl, uv)
	uipFirst := l.firstVisit(uipSetKeyPrefix+fullShortUrl, ip)

	osInfo := ua.OSInfo()
	browser, _ := ua.Browser()

	return events.StatsRecord{
		RemoteAddr:   ip,
		OS:           valueOr(osInfo.Name, "Unknown"),
		Browser:      valueOr(browser, "Unknown"),
		Device:       deviceType(ua),
		Network:      networkType(ua),
		UV:           uv,
		UVFirstFlag:  uvFirst,
		UIPFirstFlag: uipFirst,
	}
}

// firstVisit reports whether member is new to the per-link visitor set.
// Without Redis the flags degrade to false (repeat visitor), which
// undercounts uv/uip but never blocks the redirect.
func (l *RedirectLogic) firstVisit(key, member string) bool {
	if l.svcCtx.Rdb == nil {
		return false
	}
	added, err := l.svcCtx.Rdb.SAdd(l.ctx, key, member).Result()
	if err != nil {
		logx.WithContext(l.ctx).Errorw("first-visit check failed",
			logx.Field("key", key), logx.Field("error", err.Error()))
		return false
	}
	return added > 0
}

func (l *RedirectLogic) fullShortURL(code string) string {
	return strings.TrimSuffix(l.svcCtx.Config.BaseUrl, "/") + "/" + code
}

// visitorFingerprint returns the uv cookie value, minting one for first-time
// visitors.
func visitorFingerprint(r *http.Request) (string, bool) {
	if c, err := r.Cookie(uvCookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	return uuid.NewString(), false
}

// clientIP prefers proxy-provided headers over the socket peer address.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// deviceType classifies the client from its User-Agent.
func deviceType(ua *useragent.UserAgent) string {
	if ua.Bot() {
		return "Bot"
	}
	if ua.Mobile() {
		return "Mobile"
	}
	return "Desktop"
}

// networkType approximates the access network class. Mobile clients are
// counted as cellular, everything else as WIFI.
func networkType(ua *useragent.UserAgent) string {
	if ua.Mobile() {
		return "Mobile"
	}
	return "WIFI"
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package redirect

import (
	"net/http"

	"go-shortlink/services/link-api/internal/logic/redirect"
	"go-shortlink/services/link-api/internal/svc"
	"go-shortlink/services/link-api/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// Redirect to original URL
func RedirectHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RedirectRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := redirect.NewRedirectLogic(r.Context(), svcCtx)
		originUrl, err := l.Redirect(&req, r, w)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		http.Redirect(w, r, originUrl, http.StatusFound)
	}
}

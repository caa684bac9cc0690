// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package links

import (
	"net/http"

	"go-shortlink/services/link-api/internal/logic/links"
	"go-shortlink/services/link-api/internal/svc"
	"go-shortlink/services/link-api/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// Reassign a short link to another group
func RebindLinkHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RebindLinkRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := links.NewRebindLinkLogic(r.Context(), svcCtx)
		resp, err := l.Rebind(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

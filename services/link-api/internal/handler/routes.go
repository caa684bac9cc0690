// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"go-shortlink/services/link-api/internal/handler/links"
	"go-shortlink/services/link-api/internal/handler/redirect"
	"go-shortlink/services/link-api/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				// Redirect to original URL
				Method:  http.MethodGet,
				Path:    "/:code",
				Handler: redirect.RedirectHandler(serverCtx),
			},
			{
				// Reassign a short link to another group
				Method:  http.MethodPost,
				Path:    "/api/short-link/v1/rebind",
				Handler: links.RebindLinkHandler(serverCtx),
			},
		},
	)
}

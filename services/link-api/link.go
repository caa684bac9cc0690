// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"go-shortlink/pkg/problemdetails"
	"go-shortlink/services/link-api/internal/config"
	"go-shortlink/services/link-api/internal/handler"
	"go-shortlink/services/link-api/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
	_ "go.uber.org/automaxprocs"
)

var configFile = flag.String("f", "etc/link-api.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(c)
	handler.RegisterHandlers(server, ctx)

	// RFC 7807 error surface
	httpx.SetErrorHandlerCtx(func(ctx context.Context, err error) (int, interface{}) {
		if problem, ok := err.(*problemdetails.ProblemDetail); ok {
			return problem.Status, problem
		}
		problem := problemdetails.New(
			http.StatusInternalServerError,
			problemdetails.TypeInternalError,
			"Internal Error",
			err.Error(),
		)
		return problem.Status, problem
	})

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}

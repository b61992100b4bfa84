// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package main

import (
	"flag"
	"fmt"

	"pricebatch/internal/cli"
	"pricebatch/internal/config"
	"pricebatch/internal/errorx"
	"pricebatch/internal/handler"
	"pricebatch/internal/svc"

	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

var configFile = flag.String("f", config.DefaultFile, "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	httpx.SetErrorHandlerCtx(errorx.Handler)

	ctx := svc.NewServiceContext(*cfg)
	handler.RegisterHandlers(server, ctx)
	cli.LogConfigSummary(cfg)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}

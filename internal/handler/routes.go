// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"pricebatch/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func Routes(serverCtx *svc.ServiceContext) []rest.Route {
	return []rest.Route{
		{
			Method:  http.MethodPost,
			Path:    "/batches/create",
			Handler: CreateBatchHandler(serverCtx),
		},
		{
			Method:  http.MethodPut,
			Path:    "/batches/:id/upload",
			Handler: UploadHandler(serverCtx),
		},
		{
			Method:  http.MethodPut,
			Path:    "/batches/:id/commit",
			Handler: CommitHandler(serverCtx),
		},
		{
			Method:  http.MethodDelete,
			Path:    "/batches/:id/discard",
			Handler: DiscardHandler(serverCtx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/prices/:id",
			Handler: GetPriceHandler(serverCtx),
		},
	}
}

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(Routes(serverCtx))
}

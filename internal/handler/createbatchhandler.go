package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"pricebatch/internal/logic"
	"pricebatch/internal/svc"
)

func CreateBatchHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewCreateBatchLogic(r.Context(), svcCtx)
		resp, err := l.CreateBatch()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"pricebatch/internal/errorx"
	"pricebatch/internal/logic"
	"pricebatch/internal/svc"
	"pricebatch/internal/types"
)

func GetPriceHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.PriceReq
		if err := httpx.ParsePath(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errorx.BadRequest(err))
			return
		}

		l := logic.NewGetPriceLogic(r.Context(), svcCtx)
		resp, err := l.GetPrice(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

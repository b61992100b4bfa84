package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"pricebatch/internal/errorx"
	"pricebatch/internal/logic"
	"pricebatch/internal/svc"
	"pricebatch/internal/types"
)

func DiscardHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BatchReq
		if err := httpx.ParsePath(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errorx.BadRequest(err))
			return
		}

		l := logic.NewDiscardLogic(r.Context(), svcCtx)
		if err := l.Discard(&req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

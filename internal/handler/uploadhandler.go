package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/rest/httpx"

	"pricebatch/internal/errorx"
	"pricebatch/internal/logic"
	"pricebatch/internal/svc"
	"pricebatch/internal/types"
)

func UploadHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseUpload(r)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, errorx.BadRequest(err))
			return
		}

		l := logic.NewUploadLogic(r.Context(), svcCtx)
		if err := l.Upload(req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseUpload(r *http.Request) (*types.UploadReq, error) {
	var req types.UploadReq
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch {
	case slices.Contains(types.MsgpackContentTypes, mediaType):
		if err := httpx.ParsePath(r, &req); err != nil {
			return nil, err
		}
		var body types.UploadBody
		if err := msgpack.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("decode msgpack body: %w", err)
		}
		if body.Prices == nil {
			return nil, errors.New(`field "prices" is not set`)
		}
		req.Prices = body.Prices
	case mediaType == "application/json":
		if err := httpx.Parse(r, &req); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported content type %q", mediaType)
	}
	return &req, nil
}

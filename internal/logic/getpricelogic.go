package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"pricebatch/internal/svc"
	"pricebatch/internal/types"
)

type GetPriceLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetPriceLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetPriceLogic {
	return &GetPriceLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetPriceLogic) GetPrice(req *types.PriceReq) (resp *types.PriceResp, err error) {
	rec, err := l.svcCtx.Prices.GetPrice(req.Id)
	if err != nil {
		return nil, err
	}
	l.Debugf("latest price for %d is %s", req.Id, rec)
	return toPriceResp(rec), nil
}

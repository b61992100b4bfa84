package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"pricebatch/internal/metrics"
	"pricebatch/internal/svc"
	"pricebatch/internal/types"
)

type DiscardLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDiscardLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DiscardLogic {
	return &DiscardLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DiscardLogic) Discard(req *types.BatchReq) error {
	err := l.svcCtx.Prices.Discard(req.Id)
	metrics.ObserveOp("discard", err)
	if err != nil {
		l.Infof("discard of batch %d rejected: %v", req.Id, err)
		return err
	}
	metrics.SetSizes(l.svcCtx.Prices.LiveBatches(), l.svcCtx.Prices.PriceCount())
	return nil
}

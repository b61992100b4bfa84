package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"pricebatch/internal/metrics"
	"pricebatch/internal/svc"
	"pricebatch/internal/types"
)

type CreateBatchLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCreateBatchLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CreateBatchLogic {
	return &CreateBatchLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CreateBatchLogic) CreateBatch() (resp *types.CreateBatchResp, err error) {
	id, err := l.svcCtx.Prices.CreateBatch()
	metrics.ObserveOp("create", err)
	if err != nil {
		l.Errorf("create batch: %v", err)
		return nil, err
	}
	metrics.SetSizes(l.svcCtx.Prices.LiveBatches(), l.svcCtx.Prices.PriceCount())
	l.Infof("batch %d created", id)
	return &types.CreateBatchResp{Id: id}, nil
}

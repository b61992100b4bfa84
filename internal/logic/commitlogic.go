package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"pricebatch/internal/metrics"
	"pricebatch/internal/svc"
	"pricebatch/internal/types"
)

type CommitLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCommitLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CommitLogic {
	return &CommitLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CommitLogic) Commit(req *types.BatchReq) error {
	err := l.svcCtx.Prices.Commit(req.Id)
	metrics.ObserveOp("commit", err)
	if err != nil {
		l.Infof("commit of batch %d rejected: %v", req.Id, err)
		return err
	}
	metrics.SetSizes(l.svcCtx.Prices.LiveBatches(), l.svcCtx.Prices.PriceCount())
	return nil
}

package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"pricebatch/internal/metrics"
	"pricebatch/internal/svc"
	"pricebatch/internal/types"
)

type UploadLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUploadLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UploadLogic {
	return &UploadLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UploadLogic) Upload(req *types.UploadReq) error {
	records, err := toRecords(req.Prices)
	if err != nil {
		metrics.ObserveOp("upload", err)
		return err
	}

	err = l.svcCtx.Prices.Upload(req.Id, records)
	metrics.ObserveOp("upload", err)
	if err != nil {
		l.Infof("upload to batch %d rejected: %v", req.Id, err)
		return err
	}
	metrics.AddStaged(len(records))
	l.Infof("batch %d received %d prices", req.Id, len(records))
	return nil
}

package logic

import (
	"fmt"
	"strings"
	"time"

	"pricebatch/internal/errorx"
	"pricebatch/internal/types"
	"pricebatch/pkg/pricing"
)

// Zone-less layouts are read as UTC.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseAsOf(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("asOf is required")
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts, nil
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("asOf %q is not an ISO-8601 date-time", raw)
}

func toRecords(items []types.PriceItem) ([]pricing.Record, error) {
	records := make([]pricing.Record, 0, len(items))
	for i, item := range items {
		if item.Id < 0 {
			return nil, errorx.BadRequestf("prices[%d]: id must be non-negative, got %d", i, item.Id)
		}
		asOf, err := parseAsOf(item.AsOf)
		if err != nil {
			return nil, errorx.BadRequestf("prices[%d]: %v", i, err)
		}
		records = append(records, pricing.Record{ID: item.Id, AsOf: asOf, Payload: item.Payload})
	}
	return records, nil
}

func toPriceResp(rec pricing.Record) *types.PriceResp {
	return &types.PriceResp{
		Id:      rec.ID,
		AsOf:    rec.AsOf.UTC().Format(time.RFC3339Nano),
		Payload: rec.Payload,
	}
}

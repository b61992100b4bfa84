// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type BatchReq struct {
	Id int64 `path:"id"`
}

type CreateBatchResp struct {
	Id int64 `json:"id"`
}

type PriceItem struct {
	Id      int64  `json:"id" msgpack:"id"`
	AsOf    string `json:"asOf" msgpack:"asOf"`
	Payload string `json:"payload" msgpack:"payload"`
}

type PriceReq struct {
	Id int64 `path:"id"`
}

type PriceResp struct {
	Id      int64  `json:"id"`
	AsOf    string `json:"asOf"`
	Payload string `json:"payload"`
}

type UploadReq struct {
	Id     int64       `path:"id"`
	Prices []PriceItem `json:"prices" msgpack:"prices"`
}

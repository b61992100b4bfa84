package feed

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Price is one record as the producer sees it.
type Price struct {
	ID      int64
	AsOf    time.Time
	Payload string
}

type wirePrice struct {
	Id      int64  `json:"id" msgpack:"id"`
	AsOf    string `json:"asOf" msgpack:"asOf"`
	Payload string `json:"payload" msgpack:"payload"`
}

type wireUpload struct {
	Prices []wirePrice `json:"prices" msgpack:"prices"`
}

// Codec encodes an upload body.
type Codec interface {
	Name() string
	ContentType() string
	Marshal(prices []Price) ([]byte, error)
}

type jsonCodec struct{}

func (jsonCodec) Name() string        { return "json" }
func (jsonCodec) ContentType() string { return "application/json" }
func (jsonCodec) Marshal(prices []Price) ([]byte, error) {
	return json.Marshal(toWire(prices))
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string        { return "msgpack" }
func (msgpackCodec) ContentType() string { return "application/x-msgpack" }
func (msgpackCodec) Marshal(prices []Price) ([]byte, error) {
	return msgpack.Marshal(toWire(prices))
}

var (
	JSON    Codec = jsonCodec{}
	Msgpack Codec = msgpackCodec{}
)

// CodecByName resolves "json" or "msgpack".
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON, nil
	case "msgpack", "x-msgpack":
		return Msgpack, nil
	default:
		return nil, fmt.Errorf("feed: unknown codec %q", name)
	}
}

func toWire(prices []Price) wireUpload {
	out := wireUpload{Prices: make([]wirePrice, 0, len(prices))}
	for _, p := range prices {
		out.Prices = append(out.Prices, wirePrice{
			Id:      p.ID,
			AsOf:    p.AsOf.UTC().Format(time.RFC3339Nano),
			Payload: p.Payload,
		})
	}
	return out
}

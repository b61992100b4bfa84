package types

// MsgpackContentTypes select the binary upload body instead of JSON.
var MsgpackContentTypes = []string{"application/x-msgpack", "application/msgpack"}

// UploadBody is the msgpack wire shape of an upload; the batch id still
// comes from the path.
type UploadBody struct {
	Prices []PriceItem `msgpack:"prices"`
}

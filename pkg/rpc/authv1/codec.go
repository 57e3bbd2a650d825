package authv1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype under which the zkauth
// messages are framed. The service carries no generated protobuf
// types; messages are small JSON documents with byte fields encoded
// per encoding/json (base64). Clients select the codec with
// grpc.CallContentSubtype(CodecName); servers pick it up from the
// request content-type.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return CodecName }

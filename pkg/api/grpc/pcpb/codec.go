// Package pcpb defines the wire messages and service descriptor for the
// point-cloud gRPC service. The reference Protocol Buffers IDL lives in
// proto/pointcloud.proto; this package is the hand-maintained stand-in for
// what protoc-gen-go/protoc-gen-go-grpc would emit from it. Messages are
// marshaled with the "json" codec below rather than wire-format protobuf,
// since the build has no protoc step to regenerate real descriptor-backed
// proto.Message implementations from (see DESIGN.md).
package pcpb

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

const jsonCodecName = "json"

// jsonCodec implements google.golang.org/grpc/encoding.Codec over plain Go
// structs, standing in for the protobuf wire codec grpc-go registers by
// default.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return jsonCodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

package matrixproto

import (
	"fmt"
)

// Message is implemented by every matrix service wire message.
type Message interface {
	MarshalProto() ([]byte, error)
	UnmarshalProto([]byte) error
}

// Codec is a GRPC codec speaking protobuf wire format for matrix service messages.
// It is registered under the standard "proto" name, so peers built with generated
// protobuf code interoperate with it.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	vv, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("failed to marshal, message is %T, want matrixproto.Message", v)
	}
	return vv.MarshalProto()
}

func (Codec) Unmarshal(data []byte, v any) error {
	vv, ok := v.(Message)
	if !ok {
		return fmt.Errorf("failed to unmarshal, message is %T, want matrixproto.Message", v)
	}
	return vv.UnmarshalProto(data)
}

func (Codec) Name() string {
	return "proto"
}

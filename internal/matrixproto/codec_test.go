package matrixproto

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestCodecEncodesProtobufWireFormat(t *testing.T) {
	data, err := Codec{}.Marshal(&CreateZeroMatrixRequest{MatrixName: "z", Rows: 5, Cols: 10})
	require.NoError(t, err)
	// field 1 (bytes) "z", field 2 (varint) 5, field 3 (varint) 10.
	require.Equal(t, []byte{0x0a, 0x01, 'z', 0x10, 0x05, 0x18, 0x0a}, data)
}

func TestCodecOmitsZeroValues(t *testing.T) {
	data, err := Codec{}.Marshal(&MultiplyMatricesRequest{MatrixAName: "a"})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0a, 0x01, 'a'}, data)

	data, err = Codec{}.Marshal(&ListObjectsRequest{})
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestCodecRejectsForeignMessages(t *testing.T) {
	_, err := Codec{}.Marshal("not a message")
	require.Error(t, err)
	err = Codec{}.Unmarshal(nil, &struct{}{})
	require.Error(t, err)
	require.Equal(t, "proto", Codec{}.Name())
}

func TestMatrixInfoResponseDecode(t *testing.T) {
	in := &MatrixInfoResponse{
		Success:      false,
		MatrixName:   "m",
		Rows:         -1,
		Cols:         7,
		ErrorMessage: "File not found: /no/such/path",
	}
	data, err := Codec{}.Marshal(in)
	require.NoError(t, err)

	var out MatrixInfoResponse
	require.NoError(t, Codec{}.Unmarshal(data, &out))
	require.Equal(t, *in, out)
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendString(b, "future field")
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, 3)
	b = protowire.AppendTag(b, 10, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 42)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, 4)

	var out MatrixSizeResponse
	require.NoError(t, out.UnmarshalProto(b))
	require.Equal(t, MatrixSizeResponse{Success: true, Rows: 3, Cols: 4}, out)
}

func TestDecodeTruncatedInput(t *testing.T) {
	data, err := (&GetMatrixSizeRequest{MatrixName: "matrix"}).MarshalProto()
	require.NoError(t, err)

	var out GetMatrixSizeRequest
	require.Error(t, out.UnmarshalProto(data[:len(data)-2]))
}

func TestListObjectsResponseDecode(t *testing.T) {
	in := &ListObjectsResponse{Objects: []*ObjectInfo{
		{Name: "a", Type: "Matrix"},
		{Name: "b", Type: "Matrix"},
	}}
	data, err := in.MarshalProto()
	require.NoError(t, err)

	var out ListObjectsResponse
	require.NoError(t, out.UnmarshalProto(data))
	require.Equal(t, in.Objects, out.Objects)
}

func TestMultiplyRequestTransposeFlag(t *testing.T) {
	for _, hint := range []bool{true, false} {
		in := &MultiplyMatricesRequest{MatrixAName: "a", MatrixBName: "b", ResultName: "r", UseTranspose: hint}
		data, err := in.MarshalProto()
		require.NoError(t, err)
		var out MultiplyMatricesRequest
		require.NoError(t, out.UnmarshalProto(data))
		require.Equal(t, *in, out)
	}
}

package matrixproto

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Proto3 scalar fields holding the zero value are omitted from the wire.

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	// Negative int32 values are sign-extended to ten bytes, as protoc does.
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendMessage(b []byte, num protowire.Number, m []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

// fieldFunc consumes the value of one field and reports the number of bytes
// used. Returning handled=false makes decodeFields skip the value, which is how
// unknown fields and unexpected wire types are tolerated.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (n int, handled bool)

func decodeFields(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n, handled := fn(num, typ, b)
		if !handled {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) (int, bool) {
	if typ != protowire.BytesType {
		return 0, false
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n, true
}

func consumeInt32(typ protowire.Type, b []byte, dst *int32) (int, bool) {
	if typ != protowire.VarintType {
		return 0, false
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = int32(v)
	}
	return n, true
}

func consumeBool(typ protowire.Type, b []byte, dst *bool) (int, bool) {
	if typ != protowire.VarintType {
		return 0, false
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n, true
}

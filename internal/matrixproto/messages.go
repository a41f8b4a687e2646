package matrixproto

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// LoadMatrixRequest asks the server to materialize a matrix from a file on
// the server's filesystem.
type LoadMatrixRequest struct {
	MatrixName string // 1
	FilePath   string // 2
}

func (m *LoadMatrixRequest) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.MatrixName)
	b = appendString(b, 2, m.FilePath)
	return b, nil
}

func (m *LoadMatrixRequest) UnmarshalProto(b []byte) error {
	*m = LoadMatrixRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.MatrixName)
		case 2:
			return consumeString(typ, b, &m.FilePath)
		}
		return 0, false
	})
}

// CreateZeroMatrixRequest asks the server to create a zero-filled matrix.
type CreateZeroMatrixRequest struct {
	MatrixName string // 1
	Rows       int32  // 2
	Cols       int32  // 3
}

func (m *CreateZeroMatrixRequest) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.MatrixName)
	b = appendInt32(b, 2, m.Rows)
	b = appendInt32(b, 3, m.Cols)
	return b, nil
}

func (m *CreateZeroMatrixRequest) UnmarshalProto(b []byte) error {
	*m = CreateZeroMatrixRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.MatrixName)
		case 2:
			return consumeInt32(typ, b, &m.Rows)
		case 3:
			return consumeInt32(typ, b, &m.Cols)
		}
		return 0, false
	})
}

// GetMatrixSizeRequest queries the dimensions of a named matrix.
type GetMatrixSizeRequest struct {
	MatrixName string // 1
}

func (m *GetMatrixSizeRequest) MarshalProto() ([]byte, error) {
	return appendString(nil, 1, m.MatrixName), nil
}

func (m *GetMatrixSizeRequest) UnmarshalProto(b []byte) error {
	*m = GetMatrixSizeRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num == 1 {
			return consumeString(typ, b, &m.MatrixName)
		}
		return 0, false
	})
}

// MultiplyMatricesRequest asks the server to store A×B under ResultName.
// UseTranspose only selects the server-side algorithm.
type MultiplyMatricesRequest struct {
	MatrixAName  string // 1
	MatrixBName  string // 2
	ResultName   string // 3
	UseTranspose bool   // 4
}

func (m *MultiplyMatricesRequest) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.MatrixAName)
	b = appendString(b, 2, m.MatrixBName)
	b = appendString(b, 3, m.ResultName)
	b = appendBool(b, 4, m.UseTranspose)
	return b, nil
}

func (m *MultiplyMatricesRequest) UnmarshalProto(b []byte) error {
	*m = MultiplyMatricesRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.MatrixAName)
		case 2:
			return consumeString(typ, b, &m.MatrixBName)
		case 3:
			return consumeString(typ, b, &m.ResultName)
		case 4:
			return consumeBool(typ, b, &m.UseTranspose)
		}
		return 0, false
	})
}

// MatrixInfoResponse is returned by every handle-producing RPC.
// ErrorMessage is only meaningful when Success is false.
type MatrixInfoResponse struct {
	Success      bool   // 1
	MatrixName   string // 2
	Rows         int32  // 3
	Cols         int32  // 4
	ErrorMessage string // 5
}

func (m *MatrixInfoResponse) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendBool(b, 1, m.Success)
	b = appendString(b, 2, m.MatrixName)
	b = appendInt32(b, 3, m.Rows)
	b = appendInt32(b, 4, m.Cols)
	b = appendString(b, 5, m.ErrorMessage)
	return b, nil
}

func (m *MatrixInfoResponse) UnmarshalProto(b []byte) error {
	*m = MatrixInfoResponse{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch num {
		case 1:
			return consumeBool(typ, b, &m.Success)
		case 2:
			return consumeString(typ, b, &m.MatrixName)
		case 3:
			return consumeInt32(typ, b, &m.Rows)
		case 4:
			return consumeInt32(typ, b, &m.Cols)
		case 5:
			return consumeString(typ, b, &m.ErrorMessage)
		}
		return 0, false
	})
}

// MatrixSizeResponse answers GetMatrixSize.
type MatrixSizeResponse struct {
	Success      bool   // 1
	Rows         int32  // 2
	Cols         int32  // 3
	ErrorMessage string // 4
}

func (m *MatrixSizeResponse) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendBool(b, 1, m.Success)
	b = appendInt32(b, 2, m.Rows)
	b = appendInt32(b, 3, m.Cols)
	b = appendString(b, 4, m.ErrorMessage)
	return b, nil
}

func (m *MatrixSizeResponse) UnmarshalProto(b []byte) error {
	*m = MatrixSizeResponse{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch num {
		case 1:
			return consumeBool(typ, b, &m.Success)
		case 2:
			return consumeInt32(typ, b, &m.Rows)
		case 3:
			return consumeInt32(typ, b, &m.Cols)
		case 4:
			return consumeString(typ, b, &m.ErrorMessage)
		}
		return 0, false
	})
}

// ListObjectsRequest has no fields.
type ListObjectsRequest struct{}

func (m *ListObjectsRequest) MarshalProto() ([]byte, error) {
	return nil, nil
}

func (m *ListObjectsRequest) UnmarshalProto(b []byte) error {
	return decodeFields(b, func(protowire.Number, protowire.Type, []byte) (int, bool) {
		return 0, false
	})
}

// ObjectInfo describes one object registered on the server.
type ObjectInfo struct {
	Name string // 1
	Type string // 2
}

func (m *ObjectInfo) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Type)
	return b, nil
}

func (m *ObjectInfo) UnmarshalProto(b []byte) error {
	*m = ObjectInfo{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumeString(typ, b, &m.Type)
		}
		return 0, false
	})
}

// ListObjectsResponse carries all objects registered on the server.
type ListObjectsResponse struct {
	Objects []*ObjectInfo // 1
}

func (m *ListObjectsResponse) MarshalProto() ([]byte, error) {
	var b []byte
	for _, obj := range m.Objects {
		if obj == nil {
			continue
		}
		nested, err := obj.MarshalProto()
		if err != nil {
			return nil, err
		}
		b = appendMessage(b, 1, nested)
	}
	return b, nil
}

func (m *ListObjectsResponse) UnmarshalProto(b []byte) error {
	*m = ListObjectsResponse{}
	var nestedErr error
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n, true
		}
		obj := &ObjectInfo{}
		if err := obj.UnmarshalProto(v); err != nil && nestedErr == nil {
			nestedErr = err
		}
		m.Objects = append(m.Objects, obj)
		return n, true
	})
	if err != nil {
		return err
	}
	return nestedErr
}

package hash

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Wrap serializes a scalar value into its raw byte image so it can be hashed.
// Fixed-width integers and floats serialize to their little-endian memory
// image, strings and byte slices pass through their bytes, and rune slices
// serialize element-wise. Two values of different static type but identical
// byte image (say uint64(7) and int64(7)) are deliberately the same object.
//
// Wrap never copies byte slices: a []byte input is returned as is, so the
// result aliases it. A string is converted into a new byte slice.
func Wrap(x any) ([]byte, error) {
	switch v := x.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case bool:
		if v {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case int8:
		return []byte{byte(v)}, nil
	case uint8:
		return []byte{v}, nil
	case int16:
		return binary.LittleEndian.AppendUint16(nil, uint16(v)), nil
	case uint16:
		return binary.LittleEndian.AppendUint16(nil, v), nil
	case int32:
		return binary.LittleEndian.AppendUint32(nil, uint32(v)), nil
	case uint32:
		return binary.LittleEndian.AppendUint32(nil, v), nil
	case int64:
		return binary.LittleEndian.AppendUint64(nil, uint64(v)), nil
	case uint64:
		return binary.LittleEndian.AppendUint64(nil, v), nil
	case int:
		return binary.LittleEndian.AppendUint64(nil, uint64(v)), nil
	case uint:
		return binary.LittleEndian.AppendUint64(nil, uint64(v)), nil
	case uintptr:
		return binary.LittleEndian.AppendUint64(nil, uint64(v)), nil
	case float32:
		return binary.LittleEndian.AppendUint32(nil, math.Float32bits(v)), nil
	case float64:
		return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v)), nil
	case []rune:
		b := make([]byte, 0, 4*len(v))
		for _, r := range v {
			b = binary.LittleEndian.AppendUint32(b, uint32(r))
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
	}
}

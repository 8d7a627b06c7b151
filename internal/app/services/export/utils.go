package export

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ToUint64 преобразует id строки из Manticore в uint64
func ToUint64(val interface{}) (uint64, error) {
	if val == nil {
		return 0, fmt.Errorf("missing id")
	}

	switch v := val.(type) {
	case json.Number:
		return strconv.ParseUint(v.String(), 10, 64)
	case float64:
		return uint64(v), nil
	case int64:
		return uint64(v), nil
	case uint64:
		return v, nil
	case int:
		return uint64(v), nil
	case string:
		return strconv.ParseUint(v, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type for uint64 conversion: %T", val)
	}
}

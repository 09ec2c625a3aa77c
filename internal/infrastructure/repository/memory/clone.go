package memory

import "github.com/bytedance/sonic"

// clone round-trips a record through JSON so stored values never share
// slices with what callers hold.
func clone[T any](value T) (T, error) {
	var out T
	raw, err := sonic.Marshal(value)
	if err != nil {
		return out, err
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

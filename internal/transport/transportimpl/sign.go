package transportimpl

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

type signer struct {
	key     []byte
	version string
}

// sign encodes fields as JSON and returns the signed form body expected by
// the private API: signed_body=<hex hmac>.<json>.
func (s signer) sign(fields map[string]any) (map[string]string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write(body)

	return map[string]string{
		"signed_body":        hex.EncodeToString(mac.Sum(nil)) + "." + string(body),
		"ig_sig_key_version": s.version,
	}, nil
}

// formFields flattens request fields into form values. Strings pass through,
// scalars use their decimal form, everything else is JSON-encoded.
func formFields(fields map[string]any) (map[string]string, error) {
	form := make(map[string]string, len(fields))
	for k, v := range fields {
		value, err := fieldString(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		form[k] = value
	}
	return form, nil
}

func fieldString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

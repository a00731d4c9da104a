package model

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Pagination tokens are opaque to clients: the JSON of the last row's sort
// keys, base64url encoded without padding so they survive query strings.

func DecodePaginationToken[T any](token string) (*T, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode pagination token: %w", err)
	}
	var d T
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("unmarshal pagination token: %w", err)
	}
	return &d, nil
}

func GetPaginationToken[T any](d T) (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal pagination token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

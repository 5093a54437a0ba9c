package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	ferrors "filler/internal/errors"
)

// maxBodyBytes comfortably fits a snapshot of the largest accepted board.
const maxBodyBytes = 64 << 10

func DecodeJSONRequest(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", ferrors.ErrMalformedRequest, err)
	}
	return nil
}

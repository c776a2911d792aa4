// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

const defaultMaxBody = 1 << 20

// ErrBadRequest wraps every decode failure so callers can answer 400.
var ErrBadRequest = errors.New("bind: bad request")

func maxBodyBytes() int64 {
	n := config.Int("MAX_BODY_BYTES", defaultMaxBody)
	if n <= 0 {
		return defaultMaxBody
	}
	return int64(n)
}

// JSON decodes r.Body into dest and runs validation.
// Returns (errs, nil) when there are validation failures and (nil, err)
// when the body is malformed, has unknown fields or is larger than
// MAX_BODY_BYTES (default 1 MB).
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: body too large (max %d bytes)", ErrBadRequest, maxErr.Limit)
		}
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrBadRequest, err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

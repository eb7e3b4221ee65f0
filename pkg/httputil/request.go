package httputil

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/matzehuels/mindmap/pkg/errors"
)

// MaxBodySize limits request bodies accepted by [ParseJSON].
const MaxBodySize = 1 << 20

// ParseJSON decodes a JSON request body into dest. Malformed or oversized
// bodies are reported with [errors.ErrCodeInvalidInput].
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}

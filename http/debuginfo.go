package http

import (
	"net/http"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/raido/spatial"
	"github.com/segmentio/encoding/json"
)

// DebugSource provides read-only snapshots of the spatial index. Snapshots
// are published by the simulation goroutine, so serving them here never
// touches the index itself.
type DebugSource interface {
	DebugInfo() spatial.DebugInfo
}

// HandleDebugInfo serves the latest index snapshot as JSON.
func HandleDebugInfo(source DebugSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		b, err := json.Marshal(source.DebugInfo())
		if err != nil {
			logs.Warn(errors.New("encoding debug info failed").Wrap(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

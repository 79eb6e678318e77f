package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aukilabs/raido/spatial"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

type staticDebugSource spatial.DebugInfo

func (s staticDebugSource) DebugInfo() spatial.DebugInfo {
	return spatial.DebugInfo(s)
}

func TestHandleDebugInfo(t *testing.T) {
	source := staticDebugSource{
		FineCellSize:      10,
		CoarseCellSize:    100,
		VolumeCount:       3,
		FineVolumeCount:   2,
		CoarseVolumeCount: 1,
	}

	server := httptest.NewServer(HandleWithCORS(HandleDebugInfo(source)))
	defer server.Close()

	res, err := http.Get(server.URL)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var info spatial.DebugInfo
	require.NoError(t, json.Unmarshal(b, &info))
	require.Equal(t, spatial.DebugInfo(source), info)
}

func TestHandleDebugInfoMethodNotAllowed(t *testing.T) {
	server := httptest.NewServer(HandleDebugInfo(staticDebugSource{}))
	defer server.Close()

	res, err := http.Post(server.URL, "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

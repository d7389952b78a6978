package restapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"veloviz.transitdata.no/internal/utils"
)

// contentTypeForDataset maps a dataset file extension to its media type.
// Arrow files use the registered IANA type for the Arrow file format.
func contentTypeForDataset(name string) string {
	switch filepath.Ext(name) {
	case ".json":
		return "application/json"
	case ".arrow":
		return "application/vnd.apache.arrow.file"
	default:
		return "application/octet-stream"
	}
}

// preparedDataHandler serves a single exported dataset artifact from the
// prepared-data directory. Names are validated before touching the
// filesystem so the handler can never serve a file outside that directory.
func (api *RestAPI) preparedDataHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params := httprouter.ParamsFromContext(r.Context())
	name := strings.TrimPrefix(params.ByName("name"), "/")

	if err := utils.ValidateDatasetName(name); err != nil {
		api.metrics.observe("invalid", http.StatusBadRequest, time.Since(start).Seconds())
		api.sendBadRequest(w, r, err.Error())
		return
	}

	path := filepath.Join(api.Config.PreparedDir, name)
	http.ServeFile(&datasetResponseWriter{
		ResponseWriter: w,
		api:            api,
		r:              r,
		name:           name,
		start:          start,
	}, r, path)
}

// datasetResponseWriter intercepts http.ServeFile so missing artifacts get
// the JSON error envelope instead of the default text response, and so the
// content type reflects the dataset rather than sniffed bytes.
type datasetResponseWriter struct {
	http.ResponseWriter
	api         *RestAPI
	r           *http.Request
	name        string
	start       time.Time
	intercepted bool
}

func (dw *datasetResponseWriter) WriteHeader(code int) {
	dw.api.metrics.observe(dw.name, code, time.Since(dw.start).Seconds())
	if code == http.StatusNotFound || code == http.StatusForbidden {
		dw.intercepted = true
		dw.ResponseWriter.Header().Del("Content-Type")
		dw.api.sendNotFound(dw.ResponseWriter, dw.r)
		return
	}
	dw.ResponseWriter.Header().Set("Content-Type", contentTypeForDataset(dw.name))
	dw.ResponseWriter.WriteHeader(code)
}

func (dw *datasetResponseWriter) Write(b []byte) (int, error) {
	if dw.intercepted {
		// Swallow ServeFile's own error body; the JSON envelope is already sent.
		return len(b), nil
	}
	return dw.ResponseWriter.Write(b)
}

// datasetExists reports whether a named artifact is present, for the health
// endpoint's dataset inventory.
func (api *RestAPI) datasetExists(name string) bool {
	info, err := os.Stat(filepath.Join(api.Config.PreparedDir, name))
	if err != nil {
		return false
	}
	return !info.IsDir()
}

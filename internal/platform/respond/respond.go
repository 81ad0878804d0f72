package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap"

	applog "github.com/kridana/kridana-api/internal/platform/logging"
)

// Handlers in this package render RFC 7807 problem responses for requests
// that never reach a Huma operation: router-level 404/405 and recovered
// panics. Content negotiation mirrors the API itself (JSON default, CBOR
// when the client prefers it).

const (
	problemJSONContentType = "application/problem+json"
	problemCBORContentType = "application/problem+cbor"
	schemaPath             = "/schemas/ErrorModel.json"
)

// NotFoundHandler emits a problem-details 404 response.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, "Not Found", "resource not found")
	}
}

// MethodNotAllowedHandler emits a problem-details 405 response.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", "method not allowed")
	}
}

// Recoverer converts panics into problem-details 500 responses.
// http.ErrAbortHandler re-panics so the server can abort the connection.
// When the response header has already been written the body is left alone.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tw := &trackingWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				applog.LogError(r.Context(), "panic recovered",
					fmt.Errorf("%v", rec),
					zap.String("path", r.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				if tw.wroteHeader {
					return
				}
				writeProblem(tw, r, http.StatusInternalServerError, "Internal Server Error", "internal server error")
			}()
			next.ServeHTTP(tw, r)
		})
	}
}

// NoBody is a huma.StatusError carrying only a status code, for responses
// such as 304 Not Modified that must not include a body.
type NoBody struct {
	Status int
}

func (e NoBody) Error() string {
	return http.StatusText(e.Status)
}

// GetStatus implements huma.StatusError.
func (e NoBody) GetStatus() int {
	return e.Status
}

var _ huma.StatusError = NoBody{}

// problemModel is huma.ErrorModel plus the $schema field, which the
// ErrorModel struct itself does not carry.
type problemModel struct {
	Schema string `json:"$schema,omitempty" cbor:"$schema,omitempty"`
	huma.ErrorModel
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	problem := &problemModel{
		Schema: schemaPath,
		ErrorModel: huma.ErrorModel{
			Title:  title,
			Status: status,
			Detail: detail,
		},
	}

	var (
		payload     []byte
		contentType string
		err         error
	)
	if acceptsCBOR(r.Header.Get("Accept")) {
		contentType = problemCBORContentType
		payload, err = cbor.Marshal(problem)
	} else {
		contentType = problemJSONContentType
		payload, err = json.Marshal(problem)
	}
	if err != nil {
		applog.LogError(r.Context(), "failed to marshal problem response", err)
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Link", "<"+schemaPath+">; rel=\"describedBy\"")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		applog.LogError(r.Context(), "failed to write problem response", err)
	}
}

// acceptsCBOR reports whether the Accept header prefers CBOR over JSON.
// Wildcards and absent headers default to JSON.
func acceptsCBOR(accept string) bool {
	cborQ := -1.0
	jsonQ := -1.0
	for part := range strings.SplitSeq(accept, ",") {
		mediaType, q := parseAcceptPart(part)
		switch mediaType {
		case "application/cbor", problemCBORContentType:
			if q > cborQ {
				cborQ = q
			}
		case "application/json", problemJSONContentType, "application/*", "*/*", "":
			if q > jsonQ {
				jsonQ = q
			}
		}
	}
	return cborQ > 0 && cborQ > jsonQ
}

func parseAcceptPart(part string) (string, float64) {
	fields := strings.Split(part, ";")
	mediaType := strings.ToLower(strings.TrimSpace(fields[0]))
	q := 1.0
	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if v, ok := strings.CutPrefix(f, "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
	}
	return mediaType, q
}

// trackingWriter records whether a response header has been written.
type trackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *trackingWriter) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Flush passes through to the underlying writer when supported.
func (w *trackingWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

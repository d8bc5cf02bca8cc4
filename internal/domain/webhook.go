package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"jira_webhook_mock/internal/model"
)

// MaxBodyBytes caps an inbound webhook body at 2 MiB.
const MaxBodyBytes = 2 << 20

var (
	ErrInvalidJSON      = errors.New("invalid json")
	ErrBodyTooLarge     = errors.New("body too large")
	ErrStoreUnavailable = errors.New("webhook store unavailable")
)

// HeaderPairs flattens request headers into [name, value] pairs. net/http keeps
// headers in a map, so names are emitted in sorted order; repeated values of a
// name keep the order they arrived in. Values that are not visible ASCII are
// replaced with an empty string.
func HeaderPairs(header http.Header) []model.Header {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]model.Header, 0, len(header))
	for _, name := range names {
		for _, value := range header[name] {
			if !isText(value) {
				value = ""
			}
			pairs = append(pairs, model.Header{name, value})
		}
	}
	return pairs
}

// isText accepts printable ASCII and horizontal tab only.
func isText(value string) bool {
	for i := 0; i < len(value); i++ {
		b := value[i]
		if b != '\t' && (b < 0x20 || b > 0x7e) {
			return false
		}
	}
	return true
}

// IsJSONContentType reports whether contentType names a JSON media type:
// application/json or any */*+json subtype.
func IsJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	_, subtype, ok := strings.Cut(mediaType, "/")
	if !ok {
		return false
	}
	return subtype == "json" || strings.HasSuffix(subtype, "+json")
}

// CaptureTimestamp renders now as whole seconds since the Unix epoch.
// A clock reading before the epoch yields "0".
func CaptureTimestamp(now time.Time) string {
	secs := now.Unix()
	if secs < 0 {
		secs = 0
	}
	return strconv.FormatInt(secs, 10)
}

// DecodeBody parses exactly one JSON value of any shape. Numbers keep their
// original text so the body echoes back unchanged. Callers bound r with
// http.MaxBytesReader; hitting the bound yields ErrBodyTooLarge.
func DecodeBody(r io.Reader) (any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after json value", ErrInvalidJSON)
	}
	return body, nil
}

// RequestHeader returns the headers of r including Host and Transfer-Encoding,
// which net/http moves out of the header map.
func RequestHeader(r *http.Request) http.Header {
	header := r.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if r.Host != "" && header.Get("Host") == "" {
		header.Set("Host", r.Host)
	}
	if len(r.TransferEncoding) > 0 && header.Get("Transfer-Encoding") == "" {
		header.Set("Transfer-Encoding", strings.Join(r.TransferEncoding, ", "))
	}
	return header
}

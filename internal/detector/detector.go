// Package detector implements a coarse syntactic smell test for SQL
// injection attempts in request bodies.
//
// The check is a heuristic, not a parser: any single quote, semicolon or
// double hyphen in the serialized body trips it. Legitimate text such as
// "don't" is flagged too; callers rely on that behaviour staying stable.
package detector

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-secure-api/internal/mask"
)

// Reason is recorded on every alert raised by the detector.
const Reason = "SQL injection / invalid input detected"

// suspiciousTokens trip the detector when found in the serialized body.
var suspiciousTokens = []string{"'", ";", "--"}

// inspectedMethods lists the state-changing methods the detector applies to.
var inspectedMethods = map[string]struct{}{
	http.MethodPost:   {},
	http.MethodDelete: {},
}

// Verdict is the outcome of inspecting one request body.
type Verdict struct {
	// Suspicious is true when the body contains a suspicious token.
	Suspicious bool

	// RawLength is the length in bytes of the serialized body. It is only
	// set for suspicious bodies and is the only trace of the raw content
	// that may be recorded.
	RawLength int

	// Token is the first suspicious token found.
	Token string
}

// Detector inspects request bodies.
type Detector struct {
	methods map[string]struct{}
	tokens  []string
}

// New returns a Detector applying to POST and DELETE requests.
func New() *Detector {
	return &Detector{
		methods: inspectedMethods,
		tokens:  suspiciousTokens,
	}
}

// Applies reports whether requests with method are inspected at all.
func (d *Detector) Applies(method string) bool {
	_, ok := d.methods[strings.ToUpper(method)]
	return ok
}

// Inspect serializes body to its canonical JSON form and scans it. Bodies of
// non-inspected methods and empty bodies are never suspicious.
func (d *Detector) Inspect(method string, body mask.Value) Verdict {
	if !d.Applies(method) || body.IsEmpty() {
		return Verdict{}
	}

	serialized, err := json.Marshal(body)
	if err != nil {
		return Verdict{}
	}

	return d.scan(string(serialized))
}

// InspectRaw scans a body that could not be decoded as JSON. The raw text is
// its own canonical form.
func (d *Detector) InspectRaw(method string, raw []byte) Verdict {
	if !d.Applies(method) || len(raw) == 0 {
		return Verdict{}
	}
	return d.scan(string(raw))
}

func (d *Detector) scan(serialized string) Verdict {
	for _, token := range d.tokens {
		if strings.Contains(serialized, token) {
			return Verdict{Suspicious: true, RawLength: len(serialized), Token: token}
		}
	}
	return Verdict{}
}

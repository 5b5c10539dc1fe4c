package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"task_tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps task request bodies.
const MaxBodyBytes = 2621440

var (
	errUnsupportedMediaType = errors.New("unsupported media type")
	errBodyTooLarge         = errors.New("request body too large")
	errMalformedJSON        = errors.New("JSON parse error")
	errMalformedForm        = errors.New("Form data parse error")
	errNotAnObject          = errors.New("expected a dictionary")
)

// decodeTaskPayload reads a JSON or form encoded task body. Type problems on
// individual fields end up in DecodeErrors; only body level problems are
// returned as errors.
func decodeTaskPayload(c *gin.Context) (domain.TaskPayload, error) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	}

	switch c.ContentType() {
	case "", gin.MIMEJSON:
		return decodeJSONPayload(c.Request.Body)
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return decodeFormPayload(c)
	default:
		return domain.TaskPayload{}, errUnsupportedMediaType
	}
}

func decodeJSONPayload(body io.Reader) (domain.TaskPayload, error) {
	p := domain.TaskPayload{DecodeErrors: domain.FieldErrors{}}
	if body == nil {
		return p, nil
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return p, readError(err, errMalformedJSON)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return p, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return p, errNotAnObject
		}
		return p, errMalformedJSON
	}

	if v, ok := fields["title"]; ok {
		p.Title = jsonString(v, "title", p.DecodeErrors)
	}
	if v, ok := fields["description"]; ok {
		p.Description = jsonString(v, "description", p.DecodeErrors)
	}
	if v, ok := fields["completed"]; ok {
		p.Completed = jsonBool(v, p.DecodeErrors)
	}
	return p, nil
}

// jsonString accepts strings and numbers (kept verbatim); null means absent
func jsonString(v json.RawMessage, field string, errs domain.FieldErrors) *string {
	switch {
	case isNull(v):
		return nil
	case len(v) > 0 && v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return &s
		}
	case isNumber(v):
		s := string(v)
		return &s
	}
	errs.Add(field, domain.MsgInvalidString)
	return nil
}

func jsonBool(v json.RawMessage, errs domain.FieldErrors) *bool {
	if isNull(v) {
		return nil
	}

	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return &b
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if b, ok := parseBool(s); ok {
			return &b
		}
	}
	if isNumber(v) {
		// 1, 0, 1.0 and 0.0 all count
		if f, err := json.Number(v).Float64(); err == nil && (f == 0 || f == 1) {
			b := f == 1
			return &b
		}
	}

	errs.Add("completed", domain.MsgInvalidBoolean)
	return nil
}

func decodeFormPayload(c *gin.Context) (domain.TaskPayload, error) {
	p := domain.TaskPayload{DecodeErrors: domain.FieldErrors{}}

	var err error
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		err = c.Request.ParseMultipartForm(MaxBodyBytes)
	} else {
		err = c.Request.ParseForm()
	}
	if err != nil {
		return p, readError(err, errMalformedForm)
	}

	if v, ok := c.GetPostForm("title"); ok {
		p.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		p.Description = &v
	}
	if v, ok := c.GetPostForm("completed"); ok {
		if b, valid := parseBool(v); valid {
			p.Completed = &b
		} else {
			p.DecodeErrors.Add("completed", domain.MsgInvalidBoolean)
		}
	}
	return p, nil
}

func readError(err, malformed error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return malformed
}

var (
	trueSpellings  = map[string]bool{"t": true, "T": true, "y": true, "Y": true, "1": true}
	falseSpellings = map[string]bool{"f": true, "F": true, "n": true, "N": true, "0": true}
)

func init() {
	for _, w := range []string{"true", "yes", "on"} {
		trueSpellings[w] = true
		trueSpellings[strings.ToUpper(w[:1])+w[1:]] = true
		trueSpellings[strings.ToUpper(w)] = true
	}
	for _, w := range []string{"false", "no", "off"} {
		falseSpellings[w] = true
		falseSpellings[strings.ToUpper(w[:1])+w[1:]] = true
		falseSpellings[strings.ToUpper(w)] = true
	}
}

// parseBool accepts true/false, yes/no, on/off, t/f, y/n and 1/0 in lower,
// Title or UPPER case. Mixed case like "tRuE" is rejected.
func parseBool(s string) (bool, bool) {
	switch {
	case trueSpellings[s]:
		return true, true
	case falseSpellings[s]:
		return false, true
	default:
		return false, false
	}
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

func isNumber(v json.RawMessage) bool {
	if len(v) == 0 {
		return false
	}
	if v[0] != '-' && (v[0] < '0' || v[0] > '9') {
		return false
	}
	var n json.Number
	return json.Unmarshal(v, &n) == nil
}

// writeBodyError answers body level decode failures
func writeBodyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errUnsupportedMediaType):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"detail": "Unsupported media type \"" + c.ContentType() + "\" in request.",
		})
	case errors.Is(err, errBodyTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "Request body too large."})
	case errors.Is(err, errNotAnObject):
		c.JSON(http.StatusBadRequest, gin.H{
			"non_field_errors": []string{"Invalid data. Expected a dictionary."},
		})
	case errors.Is(err, errMalformedForm):
		c.JSON(http.StatusBadRequest, gin.H{"detail": errMalformedForm.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": errMalformedJSON.Error()})
	}
}

package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Constraint names reported in FieldError.Constraint.
const (
	ConstraintJSON     = "json"
	ConstraintObject   = "object"
	ConstraintBoolean  = "boolean"
	ConstraintEnum     = "enum"
	ConstraintInteger  = "integer"
	ConstraintPositive = "positive"
	ConstraintRange    = "range"
	ConstraintDate     = "date"
)

// FieldError describes one field of an update payload that failed validation.
type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// ValidationErrors is returned when an update payload is rejected.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return "invalid preferences: " + strings.Join(msgs, "; ")
}

type sectionValidator func(r *fieldReader, u *Update)

// sectionValidators maps each section name to the func that reads it. The
// order is the order errors are reported in.
var sectionValidators = []struct {
	name     string
	validate sectionValidator
}{
	{"albums", func(r *fieldReader, u *Update) {
		u.Albums = &AlbumsUpdate{DefaultAssetOrder: enumField(r, "defaultAssetOrder", AssetOrders)}
	}},
	{"folders", func(r *fieldReader, u *Update) {
		u.Folders = &FoldersUpdate{Enabled: r.boolean("enabled"), SidebarWeb: r.boolean("sidebarWeb")}
	}},
	{"memories", func(r *fieldReader, u *Update) {
		u.Memories = &MemoriesUpdate{Enabled: r.boolean("enabled")}
	}},
	{"people", func(r *fieldReader, u *Update) {
		u.People = &PeopleUpdate{Enabled: r.boolean("enabled"), SidebarWeb: r.boolean("sidebarWeb")}
	}},
	{"ratings", func(r *fieldReader, u *Update) {
		u.Ratings = &RatingsUpdate{Enabled: r.boolean("enabled")}
	}},
	{"sharedLinks", func(r *fieldReader, u *Update) {
		u.SharedLinks = &SharedLinksUpdate{Enabled: r.boolean("enabled"), SidebarWeb: r.boolean("sidebarWeb")}
	}},
	{"tags", func(r *fieldReader, u *Update) {
		u.Tags = &TagsUpdate{Enabled: r.boolean("enabled"), SidebarWeb: r.boolean("sidebarWeb")}
	}},
	{"avatar", func(r *fieldReader, u *Update) {
		u.Avatar = &AvatarUpdate{Color: enumField(r, "color", UserAvatarColors)}
	}},
	{"emailNotifications", func(r *fieldReader, u *Update) {
		u.EmailNotifications = &EmailNotificationsUpdate{
			Enabled:     r.boolean("enabled"),
			AlbumInvite: r.boolean("albumInvite"),
			AlbumUpdate: r.boolean("albumUpdate"),
		}
	}},
	{"download", func(r *fieldReader, u *Update) {
		u.Download = &DownloadUpdate{
			ArchiveSize:           r.positiveInt("archiveSize"),
			IncludeEmbeddedVideos: r.boolean("includeEmbeddedVideos"),
		}
	}},
	{"purchase", func(r *fieldReader, u *Update) {
		u.Purchase = &PurchaseUpdate{
			ShowSupportBadge:   r.boolean("showSupportBadge"),
			HideBuyButtonUntil: r.date("hideBuyButtonUntil"),
		}
	}},
	{"cast", func(r *fieldReader, u *Update) {
		u.Cast = &CastUpdate{GCastEnabled: r.boolean("gCastEnabled")}
	}},
	{"video", func(r *fieldReader, u *Update) {
		var frameScanMs *int
		if n := r.positiveInt("frameScanMs"); n != nil {
			v := int(*n)
			frameScanMs = &v
		}
		u.Video = &VideoUpdate{FrameScanMs: frameScanMs}
	}},
}

// Validate checks an untyped update payload, as produced by decoding a JSON
// request body, and returns the typed partial update. Absent and unknown
// sections are ignored. All field errors are collected into a
// ValidationErrors.
func Validate(payload map[string]any) (*Update, error) {
	u := &Update{}
	var errs ValidationErrors

	for _, s := range sectionValidators {
		raw, ok := payload[s.name]
		if !ok || raw == nil {
			continue
		}
		fields, ok := raw.(map[string]any)
		if !ok {
			errs = append(errs, FieldError{
				Field:      s.name,
				Constraint: ConstraintObject,
				Message:    s.name + " must be an object",
			})
			continue
		}
		r := &fieldReader{section: s.name, fields: fields}
		s.validate(r, u)
		errs = append(errs, r.errs...)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return u, nil
}

// Decode reads a JSON request body and validates it.
func Decode(body io.Reader) (*Update, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, ValidationErrors{{
			Field:      "body",
			Constraint: ConstraintJSON,
			Message:    "body must be a JSON object",
		}}
	}
	return Validate(payload)
}

// fieldReader reads typed fields out of one section and records failures.
type fieldReader struct {
	section string
	fields  map[string]any
	errs    []FieldError
}

func (r *fieldReader) value(name string) (any, bool) {
	v, ok := r.fields[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *fieldReader) fail(name, constraint, message string) {
	field := r.section + "." + name
	r.errs = append(r.errs, FieldError{
		Field:      field,
		Constraint: constraint,
		Message:    field + " " + message,
	})
}

// boolean accepts JSON booleans and the strings "true" and "false".
func (r *fieldReader) boolean(name string) *bool {
	v, ok := r.value(name)
	if !ok {
		return nil
	}
	var b bool
	switch t := v.(type) {
	case bool:
		b = t
	case string:
		switch t {
		case "true":
			b = true
		case "false":
			b = false
		default:
			r.fail(name, ConstraintBoolean, "must be a boolean value")
			return nil
		}
	default:
		r.fail(name, ConstraintBoolean, "must be a boolean value")
		return nil
	}
	return &b
}

func (r *fieldReader) positiveInt(name string) *int64 {
	v, ok := r.value(name)
	if !ok {
		return nil
	}
	n, constraint := toInt64(v)
	switch constraint {
	case ConstraintInteger:
		r.fail(name, ConstraintInteger, "must be an integer number")
		return nil
	case ConstraintRange:
		r.fail(name, ConstraintRange, fmt.Sprintf("must not be greater than %d", int64(math.MaxInt64)))
		return nil
	}
	if n <= 0 {
		r.fail(name, ConstraintPositive, "must be a positive number")
		return nil
	}
	return &n
}

func (r *fieldReader) date(name string) *string {
	v, ok := r.value(name)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok || !isISODate(s) {
		r.fail(name, ConstraintDate, "must be a valid ISO 8601 date string")
		return nil
	}
	return &s
}

func enumField[E ~string](r *fieldReader, name string, allowed []E) *E {
	v, ok := r.value(name)
	if !ok {
		return nil
	}
	if s, ok := v.(string); ok {
		for _, a := range allowed {
			if E(s) == a {
				return &a
			}
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	r.fail(name, ConstraintEnum, fmt.Sprintf("must be one of the following values: %s", strings.Join(names, ", ")))
	return nil
}

// toInt64 converts a decoded JSON number. On failure it returns the violated
// constraint: ConstraintInteger for non-integers and ConstraintRange for whole
// numbers above the int64 range. Whole numbers below the range clamp to
// math.MinInt64 and fail the positive check instead.
func toInt64(v any) (int64, string) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, ""
		}
		f, err := n.Float64()
		if err != nil && !isFloatRangeError(err) {
			return 0, ConstraintInteger
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case int:
		return int64(n), ""
	case int32:
		return int64(n), ""
	case int64:
		return n, ""
	}
	return 0, ConstraintInteger
}

func floatToInt64(f float64) (int64, string) {
	switch {
	case math.IsNaN(f):
		return 0, ConstraintInteger
	case math.IsInf(f, 1):
		return 0, ConstraintRange
	case math.IsInf(f, -1):
		return math.MinInt64, ""
	case f != math.Trunc(f):
		return 0, ConstraintInteger
	case f >= math.MaxInt64:
		return 0, ConstraintRange
	case f < math.MinInt64:
		return math.MinInt64, ""
	}
	return int64(f), ""
}

// isFloatRangeError reports a number too large for a float64, such as 1e400.
// Float64 then returns an infinity together with the error.
func isFloatRangeError(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}

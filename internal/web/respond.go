package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
	"github.com/sandarbhasthana/pms-app-sub005/internal/property"
	"github.com/sandarbhasthana/pms-app-sub005/internal/reservation"
)

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	switch {
	case opday.IsInvalidTimezone(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "invalid_timezone", Detail: err.Error()})
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			if fe.Tag() == "iana_tz" {
				writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "invalid_timezone", Detail: fe.Field()})
				return
			}
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_request", Detail: describe(verrs)})
	case errors.Is(err, db.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found"})
	case errors.Is(err, db.ErrDuplicate):
		writeJSON(w, http.StatusConflict, errorBody{Error: "conflict", Detail: err.Error()})
	case errors.Is(err, errBadRequest), errors.Is(err, property.ErrInvalid), errors.Is(err, reservation.ErrInvalid):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_request", Detail: err.Error()})
	default:
		s.Logger.Error("http.internal_error", "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal_error"})
	}
}

func describe(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}

// decode reads a JSON body into v and validates its struct tags.
func (s *Server) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid json: %v", err)
	}
	return s.validate.Struct(v)
}

// newValidator registers iana_tz, which accepts names the calculator can
// resolve.
func newValidator(calc opday.Calculator) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("iana_tz", func(fl validator.FieldLevel) bool {
		_, err := calc.Zone(fl.Field().String())
		return err == nil
	})
	return v
}

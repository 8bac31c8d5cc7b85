package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
	"github.com/sandarbhasthana/pms-app-sub005/internal/property"
	"github.com/sandarbhasthana/pms-app-sub005/internal/reservation"
)

type opDayResponse struct {
	At time.Time `json:"at"`
	opday.Boundary
}

type nightsResponse struct {
	Timezone     string       `json:"timezone"`
	CheckInDate  opday.Date   `json:"check_in_date"`
	CheckOutDate opday.Date   `json:"check_out_date"`
	Nights       int          `json:"nights"`
	StayDates    []opday.Date `json:"stay_dates"`
}

type withinResponse struct {
	Within          bool       `json:"within"`
	OperationalDate opday.Date `json:"operational_date"`
}

type createPropertyReq struct {
	Name     string `json:"name" validate:"required,max=200"`
	Timezone string `json:"timezone" validate:"required,iana_tz"`
}

type updatePropertyReq struct {
	Timezone string `json:"timezone" validate:"required,iana_tz"`
}

type propertyContextReq struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
}

type createReservationReq struct {
	PropertyID string    `json:"property_id" validate:"required,uuid"`
	GuestName  string    `json:"guest_name" validate:"required,max=200"`
	CheckInAt  time.Time `json:"check_in_at" validate:"required"`
	CheckOutAt time.Time `json:"check_out_at" validate:"required,gtfield=CheckInAt"`
}

func (s *Server) tz(r *http.Request) string {
	if tz := strings.TrimSpace(r.URL.Query().Get("tz")); tz != "" {
		return tz
	}
	return s.DefaultTimezone
}

func (s *Server) zone(r *http.Request) (opday.Zone, error) {
	return s.Calc.Zone(s.tz(r))
}

func queryTime(r *http.Request, key string, required bool) (time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		if required {
			return time.Time{}, badRequest("%s is required", key)
		}
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, badRequest("%s must be RFC3339", key)
	}
	return t, nil
}

func parseDate(key, v string) (opday.Date, error) {
	d, err := opday.ParseDate(strings.TrimSpace(v))
	if err != nil {
		return opday.Date{}, badRequest("%s must be YYYY-MM-DD", key)
	}
	return d, nil
}

// GET /api/v1/opday?at=&tz=
func (s *Server) handleOpDay(w http.ResponseWriter, r *http.Request) {
	at, err := queryTime(r, "at", false)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	b, err := s.Calc.Boundary(at, s.tz(r))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opDayResponse{At: at.UTC(), Boundary: b})
}

// GET /api/v1/opday/{date}?tz=
func (s *Server) handleOpDayOn(w http.ResponseWriter, r *http.Request) {
	d, err := parseDate("date", r.PathValue("date"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	b, err := s.Calc.BoundaryOn(d, s.tz(r))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// GET /api/v1/nights?check_in=&check_out=&tz=
func (s *Server) handleNights(w http.ResponseWriter, r *http.Request) {
	in, err := queryTime(r, "check_in", true)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	out, err := queryTime(r, "check_out", true)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	z, err := s.zone(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nightsResponse{
		Timezone:     z.Name(),
		CheckInDate:  z.OperationalDate(in),
		CheckOutDate: z.OperationalDate(out),
		Nights:       z.Nights(in, out),
		StayDates:    z.StayDates(in, out),
	})
}

// GET /api/v1/within?at=&date=&tz=
func (s *Server) handleWithin(w http.ResponseWriter, r *http.Request) {
	at, err := queryTime(r, "at", true)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	d, err := parseDate("date", r.URL.Query().Get("date"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	z, err := s.zone(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, withinResponse{
		Within:          z.IsWithinDay(at, d),
		OperationalDate: z.OperationalDate(at),
	})
}

func (s *Server) handlePropertyList(w http.ResponseWriter, r *http.Request) {
	ps, err := s.Properties.List(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if ps == nil {
		ps = []property.Property{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": ps})
}

func (s *Server) handlePropertyCreate(w http.ResponseWriter, r *http.Request) {
	var req createPropertyReq
	if err := s.decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	p, err := property.New(req.Name, req.Timezone)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.Properties.Create(r.Context(), p); err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.Logger.Info("property.created", "property", p.ID, "timezone", p.Timezone)
	writeJSON(w, http.StatusCreated, p)
}

// PATCH /api/v1/properties/{id} moves a property to another timezone.
func (s *Server) handlePropertyUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeErr(w, r, badRequest("id must be a uuid"))
		return
	}
	var req updatePropertyReq
	if err := s.decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.Properties.UpdateTimezone(r.Context(), id, req.Timezone); err != nil {
		s.writeErr(w, r, err)
		return
	}
	p, err := s.Properties.Get(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.Logger.Info("property.timezone_changed", "property", p.ID, "timezone", p.Timezone)
	writeJSON(w, http.StatusOK, p)
}

// POST /api/v1/property-context stores the working property in a cookie.
func (s *Server) handlePropertyContext(w http.ResponseWriter, r *http.Request) {
	if s.Cookies == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "cookies_disabled"})
		return
	}
	var req propertyContextReq
	if err := s.decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	id := uuid.MustParse(req.PropertyID)
	p, err := s.Properties.Get(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.Cookies.Set(w, r, p.ID); err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DELETE /api/v1/property-context forgets the working property.
func (s *Server) handlePropertyContextClear(w http.ResponseWriter, r *http.Request) {
	if s.Cookies == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "cookies_disabled"})
		return
	}
	s.Cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/daysheet?date= for the property in context. Without a date the
// property's current operational date is used.
func (s *Server) handleDaySheet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.Cookies.FromRequest(r)
	if !ok {
		s.writeErr(w, r, badRequest("property context required: set %s or POST /api/v1/property-context", PropertyHeader))
		return
	}

	var d opday.Date
	if v := r.URL.Query().Get("date"); v != "" {
		var err error
		if d, err = parseDate("date", v); err != nil {
			s.writeErr(w, r, err)
			return
		}
	} else {
		p, err := s.Properties.Get(r.Context(), id)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		d, err = s.Calc.OperationalDate(time.Now(), p.Timezone)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
	}

	sheet, err := s.Reservations.DaySheet(r.Context(), id, d)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (s *Server) handleReservationCreate(w http.ResponseWriter, r *http.Request) {
	var req createReservationReq
	if err := s.decode(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	res, err := reservation.New(uuid.MustParse(req.PropertyID), req.GuestName, req.CheckInAt, req.CheckOutAt)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	sum, err := s.Reservations.Create(r.Context(), res)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.Logger.Info("reservation.created", "reservation", sum.ID, "property", sum.PropertyID, "nights", sum.Nights)
	writeJSON(w, http.StatusCreated, sum)
}

func (s *Server) handleReservationGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeErr(w, r, badRequest("id must be a uuid"))
		return
	}
	sum, err := s.Reservations.Summary(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

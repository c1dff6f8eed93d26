package reservations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"animal-reservations/internal/middleware"
	"animal-reservations/internal/platform/apperr"
	"animal-reservations/internal/platform/httpx"
	"animal-reservations/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/reservations", func(rr chi.Router) {
		rr.Use(middleware.RequireUser)

		rr.Post("/", createReservationHandler(svc))
		rr.Get("/{reservationID}", getReservationHandler(svc))
		rr.Put("/{reservationID}", updateReservationHandler(svc))
		rr.Delete("/{reservationID}", deleteReservationHandler(svc))
	})
}

type createReservationRequest struct {
	UserID    string `json:"user_id"`
	AnimalID  int64  `json:"animal_id" validate:"required,gt=0"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

type ReservationResponse struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	AnimalID  int64  `json:"animal_id"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

func createReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		raw, err := decodeRaw(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		// Re-marshal del mapa normalizado para reutilizar los tags del struct.
		var req createReservationRequest
		b, _ := json.Marshal(raw)
		if err := json.Unmarshal(b, &req); err != nil {
			httpx.WriteError(w, r, apperr.Validation(err.Error()))
			return
		}
		if err := httpx.Validate(req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		// user_id es opcional; si viene tiene que ser el del token.
		userID := strings.TrimSpace(req.UserID)
		if userID == "" {
			userID = claims.UserID
		}
		if userID != claims.UserID {
			httpx.WriteError(w, r, apperr.ErrForbidden.WithMessage("cannot create reservations for another user"))
			return
		}

		res, err := svc.Create(r.Context(), CreateInput{
			UserID:    userID,
			AnimalID:  req.AnimalID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		})
		metrics.ObserveReservation("create", err)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, ToResponse(res))
	}
}

func getReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := reservationID(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		res, err := svc.Get(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(res))
	}
}

// updateReservationHandler: solo el dueño edita. Para cualquier otro usuario
// la reserva "no existe".
func updateReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		id, err := reservationID(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		current, err := svc.Get(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if current.UserID != claims.UserID {
			httpx.WriteError(w, r, apperr.ErrReservationNotFound)
			return
		}

		raw, err := decodeRaw(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		patch, err := patchFromRaw(raw)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, patch)
		metrics.ObserveReservation("update", err)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if updated == nil {
			httpx.WriteJSON(w, http.StatusOK, nil)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(*updated))
	}
}

func deleteReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		id, err := reservationID(r)
		if errors.Is(err, apperr.ErrReservationNotFound) {
			// igual que borrar una reserva ajena: nada que borrar
			w.WriteHeader(http.StatusOK)
			return
		}
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		err = svc.Delete(r.Context(), claims.UserID, id)
		metrics.ObserveReservation("delete", err)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func ToResponse(res Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        res.ID,
		UserID:    res.UserID,
		AnimalID:  res.AnimalID,
		StartDate: res.StartDate,
		EndDate:   res.EndDate,
	}
}

func ToResponses(items []Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(items))
	for _, res := range items {
		out = append(out, ToResponse(res))
	}
	return out
}

// reservationID: un número fuera de rango es una reserva que no existe.
func reservationID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "reservationID"), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, apperr.ErrReservationNotFound
	}
	if err != nil || id <= 0 {
		return 0, apperr.Validation("reservation id must be a positive integer")
	}
	return id, nil
}

// decodeRaw lee el body como mapa y normaliza las keys a snake_case, así
// startDate y start_date son equivalentes.
func decodeRaw(r *http.Request) (map[string]json.RawMessage, error) {
	var in map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return nil, apperr.Validation("invalid json")
	}
	out := make(map[string]json.RawMessage, len(in))
	for k, v := range in {
		key := snakeCase(k)
		if _, dup := out[key]; dup {
			return nil, apperr.Validation("field " + key + " is given more than once")
		}
		out[key] = v
	}
	return out, nil
}

// patchFromRaw acepta solo columnas editables. Toda key que nombra una fecha
// se normaliza a fecha de calendario.
func patchFromRaw(raw map[string]json.RawMessage) (Patch, error) {
	var p Patch
	for k, v := range raw {
		switch {
		case Column(k) == ColumnStartDate || Column(k) == ColumnEndDate:
			var d Date
			if err := json.Unmarshal(v, &d); err != nil || d.IsZero() {
				return Patch{}, apperr.Validation(k + " must be YYYY-MM-DD")
			}
			if Column(k) == ColumnStartDate {
				p.StartDate = &d
			} else {
				p.EndDate = &d
			}
		case Column(k) == ColumnAnimalID:
			var id int64
			if err := json.Unmarshal(v, &id); err != nil {
				return Patch{}, apperr.Validation("animal_id must be an integer")
			}
			p.AnimalID = &id
		default:
			return Patch{}, apperr.Validation("field " + k + " cannot be updated")
		}
	}
	return p, nil
}

// snakeCase: startDate -> start_date, animalID -> animal_id,
// HTTPStatus -> http_status. Las corridas de mayúsculas son una sola palabra.
func snakeCase(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := rs[i-1]
				nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

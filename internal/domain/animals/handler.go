package animals

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/middleware"
	"animal-reservations/internal/platform/apperr"
	"animal-reservations/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, reservationsSvc *reservations.Service) {
	r.Route("/api/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))

		// Reservas del animal (requiere sesión)
		ar.With(middleware.RequireUser).Get("/{animalID}/reservations", animalReservationsHandler(svc, reservationsSvc))
	})
}

type animalResponse struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Breed      string `json:"breed"`
	NumAnimals int    `json:"num_animals"`
	ImageURL   string `json:"animal_img_url,omitempty"`
}

type animalsResponse struct {
	Animals []animalResponse `json:"animals"`
}

// listAnimalsHandler: ?type=Sheep&type=Alpaca o ?type=Sheep,Alpaca; ?q= busca
// en type y breed.
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var types []string
		for _, v := range q["type"] {
			types = append(types, strings.Split(v, ",")...)
		}

		items, err := svc.List(r.Context(), Filter{Types: types, Query: q.Get("q")})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		httpx.WriteJSON(w, http.StatusOK, animalsResponse{Animals: out})
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := animalID(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func animalReservationsHandler(svc *Service, reservationsSvc *reservations.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := animalID(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		// 404 del animal antes que "sin reservas"
		if _, err := svc.GetByID(r.Context(), id); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		items, err := reservationsSvc.ListByAnimal(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, reservations.ToResponses(items))
	}
}

// animalID: un número fuera de rango es un id que no existe, no un input inválido.
func animalID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "animalID"), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, apperr.ErrAnimalNotFound
	}
	if err != nil || id <= 0 {
		return 0, apperr.Validation("animal id must be a positive integer")
	}
	return id, nil
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:         a.ID,
		Type:       a.Type,
		Breed:      a.Breed,
		NumAnimals: a.NumAnimals,
		ImageURL:   a.ImageURL,
	}
}

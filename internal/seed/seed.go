// Package seed carga el set de datos de demo: 3 usuarios, 4 animales y 5
// reservas. Sirve tanto para Postgres como para el store en memoria.
package seed

import (
	"context"
	"fmt"

	"animal-reservations/internal/domain/animals"
	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/domain/users"
	"animal-reservations/internal/platform/logger"
)

type Services struct {
	Users        *users.Service
	Animals      *animals.Service
	Reservations *reservations.Service
}

var Users = []users.RegisterInput{
	{FirstName: "Al", LastName: "Bert", Email: "albert@email.com", Password: "bertie99", Address: "Maple Plain, MN"},
	{FirstName: "Sandra", LastName: "Bolton", Email: "sandra@email.com", Password: "2sandy4me", Address: "Delano, MN"},
	{FirstName: "Lina", LastName: "Olson", Email: "lolson@email.com", Password: "linalina", Address: "Minnetrista, MN"},
}

var Animals = []animals.CreateInput{
	{Type: "Chicken", Breed: "Easter Eggers", NumAnimals: 3, ImageURL: "https://www.chickensforbackyards.com/wp-content/uploads/2017/10/320Easter20Egger1.jpg"},
	{Type: "Sheep", Breed: "Cotswold", NumAnimals: 2, ImageURL: "https://i.pinimg.com/originals/a7/b5/a5/a7b5a561d9f4e81276b18982a6bb022e.jpg"},
	{Type: "Cow Calf pair", Breed: "Jersey", NumAnimals: 2, ImageURL: "https://images.fineartamerica.com/images/artworkimages/mediumlarge/1/1-jersey-cow-and-calf-bethany-benike.jpg"},
	{Type: "Alpaca", Breed: "Huacaya", NumAnimals: 2, ImageURL: "https://www.marylandzoo.org/wp-content/uploads/2017/10/alpaca_web.jpg"},
}

// reservationFixture referencia usuarios y animales por posición.
type reservationFixture struct {
	user, animal int
	start, end   string
}

var reservationFixtures = []reservationFixture{
	{0, 0, "2025-04-30", "2025-08-30"},
	{0, 1, "2025-04-10", "2025-07-14"},
	{0, 2, "2025-04-10", "2025-06-01"},
	{1, 1, "2025-07-15", "2025-09-15"},
	{2, 2, "2025-06-01", "2025-09-01"},
}

type Result struct {
	Users        []users.User
	Animals      []animals.Animal
	Reservations []reservations.Reservation
}

// Run asume tablas vacías (el caller hace reset antes).
func Run(ctx context.Context, svc Services, log logger.Logger) (Result, error) {
	var out Result

	log.Info("seeding users", nil)
	for _, in := range Users {
		u, _, err := svc.Users.Register(ctx, in)
		if err != nil {
			return out, fmt.Errorf("seed user %s: %w", in.Email, err)
		}
		out.Users = append(out.Users, u)
	}

	log.Info("seeding animals", nil)
	for _, in := range Animals {
		a, err := svc.Animals.Create(ctx, in)
		if err != nil {
			return out, fmt.Errorf("seed animal %s: %w", in.Type, err)
		}
		out.Animals = append(out.Animals, a)
	}

	log.Info("seeding reservations", nil)
	for _, f := range reservationFixtures {
		start, err := reservations.ParseDate(f.start)
		if err != nil {
			return out, err
		}
		end, err := reservations.ParseDate(f.end)
		if err != nil {
			return out, err
		}

		r, err := svc.Reservations.Create(ctx, reservations.CreateInput{
			UserID:    out.Users[f.user].ID,
			AnimalID:  out.Animals[f.animal].ID,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			return out, fmt.Errorf("seed reservation: %w", err)
		}
		out.Reservations = append(out.Reservations, r)
	}

	log.Info("seed finished", map[string]any{
		"users":        len(out.Users),
		"animals":      len(out.Animals),
		"reservations": len(out.Reservations),
	})
	return out, nil
}

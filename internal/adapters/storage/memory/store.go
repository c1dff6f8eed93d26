// Package memory implementa los repositorios sobre mapas en proceso. Un solo
// Store guarda las tres tablas para que las FKs y el borrado en cascada se
// comporten como en Postgres.
package memory

import (
	"sync"

	"animal-reservations/internal/domain/animals"
	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/domain/users"
)

type Store struct {
	mu sync.RWMutex

	users        map[string]users.User
	userOrder    []string
	animals      map[int64]animals.Animal
	reservations map[int64]reservations.Reservation

	animalSeq      int64
	reservationSeq int64
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]users.User),
		animals:      make(map[int64]animals.Animal),
		reservations: make(map[int64]reservations.Reservation),
	}
}

// Reset vacía todo y reinicia las secuencias (equivale a migrate down + up).
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]users.User)
	s.userOrder = nil
	s.animals = make(map[int64]animals.Animal)
	s.reservations = make(map[int64]reservations.Reservation)
	s.animalSeq = 0
	s.reservationSeq = 0
}

// cascadeLocked borra las reservas que matchean. Requiere s.mu tomado.
func (s *Store) cascadeLocked(match func(reservations.Reservation) bool) {
	for id, r := range s.reservations {
		if match(r) {
			delete(s.reservations, id)
		}
	}
}

package animals

import "math"

// MaxID es el mayor id que entra en animals.id (SERIAL, int4). Ids más
// grandes no existen en ningún store.
const MaxID = math.MaxInt32

func validID(id int64) bool {
	return id > 0 && id <= MaxID
}

// Animal es una entrada del catálogo: un grupo de animales de un tipo y raza
// que se reserva como unidad.
type Animal struct {
	ID         int64
	Type       string // Chicken, Sheep, Alpaca...
	Breed      string
	NumAnimals int
	ImageURL   string // opcional
}

// Filter acota List. Vacío = todo el catálogo.
type Filter struct {
	Types []string // match exacto (sin distinguir mayúsculas) contra Type
	Query string   // substring sobre type y breed
}

func (f Filter) IsEmpty() bool {
	return len(f.Types) == 0 && f.Query == ""
}

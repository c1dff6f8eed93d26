package reservations

// Reservation vincula un usuario, un animal y un rango de fechas.
//
// No hay columna de estado: mientras la fila existe la reserva está activa;
// borrarla es cancelarla (estado terminal). Editar solo reemplaza campos del
// rango y vuelve a "activa".
type Reservation struct {
	ID       int64
	UserID   string
	AnimalID int64

	StartDate Date
	EndDate   Date
}

// Column identifica un campo editable por nombre de columna.
type Column string

const (
	ColumnStartDate Column = "start_date"
	ColumnEndDate   Column = "end_date"
	ColumnAnimalID  Column = "animal_id"
)

// Patch es un set parcial de campos: nil = no tocar.
type Patch struct {
	StartDate *Date
	EndDate   *Date
	AnimalID  *int64
}

func (p Patch) IsEmpty() bool {
	return p.StartDate == nil && p.EndDate == nil && p.AnimalID == nil
}

func (p Patch) TouchesDates() bool {
	return p.StartDate != nil || p.EndDate != nil
}

// Columns devuelve solo las columnas presentes, con las fechas ya normalizadas
// a "YYYY-MM-DD".
func (p Patch) Columns() map[string]any {
	out := map[string]any{}
	if p.StartDate != nil {
		out[string(ColumnStartDate)] = p.StartDate.String()
	}
	if p.EndDate != nil {
		out[string(ColumnEndDate)] = p.EndDate.String()
	}
	if p.AnimalID != nil {
		out[string(ColumnAnimalID)] = *p.AnimalID
	}
	return out
}

// Apply devuelve una copia de r con el patch aplicado.
func (p Patch) Apply(r Reservation) Reservation {
	if p.StartDate != nil {
		r.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		r.EndDate = *p.EndDate
	}
	if p.AnimalID != nil {
		r.AnimalID = *p.AnimalID
	}
	return r
}

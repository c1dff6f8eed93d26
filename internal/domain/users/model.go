package users

// User es la identidad de quien reserva. PasswordHash nunca sale del dominio:
// las respuestas HTTP usan userResponse, que no lo incluye.
type User struct {
	ID string // UUID

	FirstName string
	LastName  string
	Email     string // único, comparación exacta
	Address   string
	Host      bool

	PasswordHash string
}

package auth

// Claims representa la información extraída del token: el payload {id, email}.
type Claims struct {
	UserID string
	Email  string
}

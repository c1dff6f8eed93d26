package users

import (
	"net/http"

	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/middleware"
	"animal-reservations/internal/platform/httpx"
	"animal-reservations/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const (
	signupOKMessage   = "Thank you for signing up"
	signupFailMessage = "Error generating token or creating user"
	loginOKMessage    = "you're logged in!"
)

// RegisterRoutes monta /api/users. authLimit (opcional) envuelve solo signup
// y login.
func RegisterRoutes(r chi.Router, svc *Service, reservationsSvc *reservations.Service, log logger.Logger, authLimit func(http.Handler) http.Handler) {
	if authLimit == nil {
		authLimit = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/api/users", func(ur chi.Router) {
		ur.With(authLimit).Post("/signup", signupHandler(svc, log))
		ur.With(authLimit).Post("/login", loginHandler(svc))
		ur.Get("/", listUsersHandler(svc))

		ur.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireUser)
			pr.Get("/me", meHandler(svc))
			pr.Get("/me/reservations", myReservationsHandler(reservationsSvc))
		})
	})
}

type signupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Address   string `json:"address" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Host      bool   `json:"host"`
}

type usersResponse struct {
	Users []userResponse `json:"users"`
}

// signupHandler colapsa cualquier falla (validación, email duplicado, store)
// en un 500 con mensaje fijo; la causa solo queda en el log.
func signupHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			log.Warn("signup rejected", map[string]any{"error": err.Error()})
			httpx.WriteJSON(w, http.StatusInternalServerError, messageResponse{Message: signupFailMessage})
			return
		}

		u, token, err := svc.Register(r.Context(), RegisterInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
			Address:   req.Address,
		})
		if err != nil {
			log.Error("signup failed", map[string]any{"email": req.Email, "error": err.Error()})
			httpx.WriteJSON(w, http.StatusInternalServerError, messageResponse{Message: signupFailMessage})
			return
		}

		log.Info("user created", map[string]any{"user_id": u.ID})
		httpx.WriteJSON(w, http.StatusCreated, tokenResponse{Message: signupOKMessage, Token: token})
	}
}

func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		// Un body vacío o inválido equivale a credenciales faltantes.
		_ = httpx.DecodeJSON(r, &req)

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, tokenResponse{Message: loginOKMessage, Token: token})
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		httpx.WriteJSON(w, http.StatusOK, usersResponse{Users: out})
	}
}

func myReservationsHandler(reservationsSvc *reservations.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := reservationsSvc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, reservations.ToResponses(items))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Address:   u.Address,
		Host:      u.Host,
	}
}

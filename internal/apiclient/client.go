// Package apiclient es el cliente Go de la API de reservas: cubre lo que hace
// el frontend (signup, login, catálogo, reservas) y guarda el token de sesión.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"animal-reservations/internal/platform/httpclient"
)

// ErrFailedToFetch: el servidor no respondió (red, DNS, timeout).
var ErrFailedToFetch = httpclient.ErrFailedToFetch

// Error es una respuesta no-2xx de la API.
type Error struct {
	Status  int
	Name    string
	Message string
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("api %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api %d: %s: %s", e.Status, e.Name, e.Message)
}

type Client struct {
	http *httpclient.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	return NewWithTransport(baseURL, timeout, nil)
}

func NewWithTransport(baseURL string, timeout time.Duration, tr http.RoundTripper) (*Client, error) {
	hc, err := httpclient.New(baseURL, timeout, tr)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Host      bool   `json:"host"`
}

type Animal struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Breed      string `json:"breed"`
	NumAnimals int    `json:"num_animals"`
	ImageURL   string `json:"animal_img_url,omitempty"`
}

// Reservation lleva las fechas como "YYYY-MM-DD".
type Reservation struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	AnimalID  int64  `json:"animal_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type SignupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address"`
}

type NewReservation struct {
	AnimalID  int64  `json:"animal_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ReservationPatch: nil = no tocar.
type ReservationPatch struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	AnimalID  *int64  `json:"animal_id,omitempty"`
}

type AnimalFilter struct {
	Types []string
	Query string
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Signup crea la cuenta y deja la sesión iniciada.
func (c *Client) Signup(ctx context.Context, in SignupInput) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/signup", nil, in, &out); err != nil {
		return "", err
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", nil, in, &out); err != nil {
		return "", err
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

// Logout solo olvida el token; el servidor no guarda sesiones.
func (c *Client) Logout() {
	c.SetToken("")
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &out)
	return out, err
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &out)
	return out.Users, err
}

func (c *Client) ListAnimals(ctx context.Context, f AnimalFilter) ([]Animal, error) {
	q := url.Values{}
	for _, t := range f.Types {
		q.Add("type", t)
	}
	if f.Query != "" {
		q.Set("q", f.Query)
	}

	var out struct {
		Animals []Animal `json:"animals"`
	}
	err := c.do(ctx, http.MethodGet, "/api/animals", q, nil, &out)
	return out.Animals, err
}

func (c *Client) GetAnimal(ctx context.Context, id int64) (Animal, error) {
	var out Animal
	err := c.do(ctx, http.MethodGet, "/api/animals/"+strconv.FormatInt(id, 10), nil, nil, &out)
	return out, err
}

func (c *Client) AnimalReservations(ctx context.Context, animalID int64) ([]Reservation, error) {
	var out []Reservation
	err := c.do(ctx, http.MethodGet, "/api/animals/"+strconv.FormatInt(animalID, 10)+"/reservations", nil, nil, &out)
	return out, err
}

// CreateReservation reserva a nombre del usuario logueado.
func (c *Client) CreateReservation(ctx context.Context, in NewReservation) (Reservation, error) {
	var out Reservation
	err := c.do(ctx, http.MethodPost, "/api/reservations", nil, in, &out)
	return out, err
}

func (c *Client) GetReservation(ctx context.Context, id int64) (Reservation, error) {
	var out Reservation
	err := c.do(ctx, http.MethodGet, reservationPath(id), nil, nil, &out)
	return out, err
}

// UpdateReservation devuelve nil si el patch estaba vacío.
func (c *Client) UpdateReservation(ctx context.Context, id int64, p ReservationPatch) (*Reservation, error) {
	var out *Reservation
	if err := c.do(ctx, http.MethodPut, reservationPath(id), nil, p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteReservation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, reservationPath(id), nil, nil, nil)
}

func (c *Client) MyReservations(ctx context.Context) ([]Reservation, error) {
	var out []Reservation
	err := c.do(ctx, http.MethodGet, "/api/users/me/reservations", nil, nil, &out)
	return out, err
}

func reservationPath(id int64) string {
	return "/api/reservations/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	err := c.http.Do(ctx, httpclient.Request{
		Method: method,
		Path:   path,
		Query:  q,
		Token:  c.Token(),
		In:     in,
		Out:    out,
	})
	if err == nil {
		return nil
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		msg := he.Message
		if msg == "" {
			msg = he.Body
		}
		return &Error{Status: he.StatusCode, Name: he.Name, Message: msg}
	}
	return err
}

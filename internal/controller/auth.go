package controller

import (
	"fmt"
	"regexp"
	"strings"

	"tuninggarage/internal/api"
	"tuninggarage/internal/session"
)

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthController drives the login and register screens. Its payload is the
// welcome message shown after a successful authentication.
type AuthController struct {
	base
	api     *api.Client
	session *session.Store
	state   State[string]
}

func NewAuth(client *api.Client, store *session.Store) *AuthController {
	return &AuthController{base: newBase(), api: client, session: store}
}

func (c *AuthController) State() State[string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Login validates locally first; a validation failure sets Error without any
// network call. On success the session is persisted before the state flips.
func (c *AuthController) Login(email, password string) Nav {
	if msg := validateCredentials(email, password); msg != "" {
		c.mu.Lock()
		c.begin()
		c.state = Errored[string](msg)
		c.mu.Unlock()
		return NavNone
	}

	c.mu.Lock()
	seq := c.begin()
	c.state = Loading[string]()
	c.mu.Unlock()

	resp, err := c.api.Auth().Login(c.ctx, api.LoginRequest{Email: email, Password: password})
	return c.finishAuth(seq, resp, err)
}

// Register additionally requires a display name; the phone is optional and
// passed through untouched.
func (c *AuthController) Register(name, email, password, phone string) Nav {
	if strings.TrimSpace(name) == "" {
		c.mu.Lock()
		c.begin()
		c.state = Errored[string]("Completa todos los campos")
		c.mu.Unlock()
		return NavNone
	}
	if msg := validateCredentials(email, password); msg != "" {
		c.mu.Lock()
		c.begin()
		c.state = Errored[string](msg)
		c.mu.Unlock()
		return NavNone
	}

	req := api.RegisterRequest{Name: name, Email: email, Password: password}
	if phone = strings.TrimSpace(phone); phone != "" {
		req.Phone = &phone
	}

	c.mu.Lock()
	seq := c.begin()
	c.state = Loading[string]()
	c.mu.Unlock()

	resp, err := c.api.Auth().Register(c.ctx, req)
	return c.finishAuth(seq, resp, err)
}

// Logout clears the persisted session and sends the shell back to login.
func (c *AuthController) Logout() Nav {
	c.mu.Lock()
	c.begin()
	c.state = State[string]{}
	c.mu.Unlock()

	if err := c.session.Clear(); err != nil {
		c.mu.Lock()
		c.setAction("No se pudo cerrar la sesión: " + err.Error())
		c.mu.Unlock()
		return NavNone
	}
	return NavLogin
}

func (c *AuthController) finishAuth(seq uint64, resp *api.AuthResponse, err error) Nav {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(seq) {
		return NavNone
	}
	if err != nil {
		c.state = Errored[string](failureMessage(err))
		return NavNone
	}

	if err := c.session.Save(resp.Token, resp.User.ID, resp.User.Name, resp.User.Email); err != nil {
		c.state = Errored[string]("No se pudo guardar la sesión: " + err.Error())
		return NavNone
	}
	c.state = Success(fmt.Sprintf("¡Bienvenido %s!", resp.User.Name))
	return NavHome
}

func validateCredentials(email, password string) string {
	if strings.TrimSpace(email) == "" || password == "" {
		return "Completa todos los campos"
	}
	if !reEmail.MatchString(email) {
		return "Correo electrónico inválido"
	}
	if len(password) < 6 {
		return "La contraseña debe tener al menos 6 caracteres"
	}
	return ""
}

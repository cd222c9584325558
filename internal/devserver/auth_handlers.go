package devserver

import (
	"net/http"
	"strings"

	"tuninggarage/internal/domain"
	"tuninggarage/internal/security"
	"tuninggarage/internal/store/sqlite"
)

type registerRequest struct {
	Name     string  `json:"nombre"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"telefono"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is flat: token and user ride next to success/message, with
// no data wrapper.
type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"usuario,omitempty"`
}

func authReject(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, authResponse{Success: false, Message: message})
}

func handleRegister(users *sqlite.UserRepo, tokens *security.TokenService, hasher *security.PasswordHasher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			authReject(w, "Solicitud inválida")
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
			authReject(w, "Completa todos los campos")
			return
		}
		if len(req.Password) < 6 {
			authReject(w, "La contraseña debe tener al menos 6 caracteres")
			return
		}

		existing, err := users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			fail(w, err)
			return
		}
		if existing != nil {
			authReject(w, "El correo ya está registrado")
			return
		}

		hashed, err := hasher.Hash(req.Password)
		if err != nil {
			fail(w, err)
			return
		}

		user := &sqlite.User{
			Name:           strings.TrimSpace(req.Name),
			Email:          strings.TrimSpace(req.Email),
			Phone:          req.Phone,
			HashedPassword: hashed,
		}
		if err := users.Create(r.Context(), user); err != nil {
			fail(w, err)
			return
		}

		issueToken(w, r, users, tokens, user.ID, "Registro exitoso")
	}
}

func handleLogin(users *sqlite.UserRepo, tokens *security.TokenService, hasher *security.PasswordHasher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			authReject(w, "Solicitud inválida")
			return
		}

		user, err := users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			fail(w, err)
			return
		}
		if user == nil || hasher.Verify(req.Password, user.HashedPassword) != nil {
			authReject(w, "Credenciales incorrectas")
			return
		}

		issueToken(w, r, users, tokens, user.ID, "Inicio de sesión exitoso")
	}
}

type updateAvatarRequest struct {
	AvatarURL string `json:"avatarURL"`
}

// handleUpdateAvatar points the account at an already-uploaded image URL.
func handleUpdateAvatar(users *sqlite.UserRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req updateAvatarRequest
		if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.AvatarURL) == "" {
			reject(w, "URL de imagen inválida")
			return
		}

		if err := users.SetAvatar(r.Context(), user.ID, req.AvatarURL); err != nil {
			fail(w, err)
			return
		}
		updated, err := users.GetByID(r.Context(), user.ID)
		if err != nil {
			fail(w, err)
			return
		}
		if updated == nil {
			fail(w, domain.ErrNotFound)
			return
		}
		ok(w, "Avatar actualizado", presentUser(updated))
	}
}

func issueToken(w http.ResponseWriter, r *http.Request, users *sqlite.UserRepo, tokens *security.TokenService, userID int, message string) {
	token, err := tokens.CreateForUser(userID)
	if err != nil {
		fail(w, err)
		return
	}
	user, err := users.GetByID(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	if user == nil {
		fail(w, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		Message: message,
		Token:   token,
		User:    presentUser(user),
	})
}

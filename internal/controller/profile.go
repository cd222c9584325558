package controller

import (
	"tuninggarage/internal/api"
	"tuninggarage/internal/domain"
	"tuninggarage/internal/session"
)

// ProfileController renders the signed-in identity from the credential store.
// The backend has no profile read endpoint; the session is the source.
type ProfileController struct {
	base
	api     *api.Client
	session *session.Store
}

func NewProfile(client *api.Client, store *session.Store) *ProfileController {
	return &ProfileController{base: newBase(), api: client, session: store}
}

func (c *ProfileController) State() State[domain.Session] {
	sess := c.session.Session()
	if !sess.LoggedIn() {
		return Errored[domain.Session]("Inicia sesión para ver tu perfil")
	}
	return Success(sess)
}

// UploadAvatar pushes the image through the shared upload endpoint, then
// points the account at the returned URL. A failed upload aborts the update.
func (c *ProfileController) UploadAvatar(filename, contentType string, content []byte) {
	url, err := c.api.Social().UploadImage(c.ctx, filename, contentType, content)
	if err != nil {
		c.mu.Lock()
		c.setAction("No se pudo subir la imagen: " + failureMessage(err))
		c.mu.Unlock()
		return
	}

	_, err = c.api.Auth().UpdateAvatar(c.ctx, url)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.setAction("No se pudo actualizar el avatar: " + failureMessage(err))
		return
	}
	c.setAction("Avatar actualizado")
}

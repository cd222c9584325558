package controller

import (
	"strings"

	"tuninggarage/internal/api"
	"tuninggarage/internal/domain"
)

// SocialController drives the feed: posts, likes and the comment sheet for
// one post at a time.
type SocialController struct {
	base
	api          *api.Client
	posts        State[[]domain.SocialPost]
	comments     State[[]domain.Comment]
	commentsPost int
}

func NewSocial(client *api.Client) *SocialController {
	return &SocialController{base: newBase(), api: client}
}

func (c *SocialController) Posts() State[[]domain.SocialPost] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.posts
}

func (c *SocialController) Comments() State[[]domain.Comment] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.comments
}

func (c *SocialController) Load() {
	c.mu.Lock()
	seq := c.begin()
	c.posts = beginLoad(c.posts)
	c.mu.Unlock()

	posts, err := c.api.Social().Posts(c.ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(seq) {
		return
	}
	c.posts = finishLoad(c.posts, posts, len(posts) == 0, "Aún no hay publicaciones. ¡Sé el primero!", err)
}

// CreatePost uploads the image first when one is attached; an upload failure
// aborts the create entirely and is surfaced as its own message.
func (c *SocialController) CreatePost(title, body, imageName, imageType string, image []byte) {
	if strings.TrimSpace(body) == "" {
		c.notify("La descripción es obligatoria")
		return
	}

	req := api.CreatePostRequest{Body: body}
	if title = strings.TrimSpace(title); title != "" {
		req.Title = &title
	}

	if len(image) > 0 {
		url, err := c.api.Social().UploadImage(c.ctx, imageName, imageType, image)
		if err != nil {
			c.notify("No se pudo subir la imagen: " + failureMessage(err))
			return
		}
		req.ImageURL = &url
	}

	if _, err := c.api.Social().CreatePost(c.ctx, req); err != nil {
		c.notify(failureMessage(err))
		return
	}
	c.notify("Publicación creada")
	c.Load()
}

// ToggleLike flips the caller's like server-side, then refetches so counts
// and the flag stay server-computed.
func (c *SocialController) ToggleLike(postID int) {
	if _, err := c.api.Social().ToggleLike(c.ctx, postID); err != nil {
		c.notify(failureMessage(err))
		return
	}
	c.Load()
}

func (c *SocialController) LoadComments(postID int) {
	c.mu.Lock()
	c.commentsPost = postID
	c.comments = Loading[[]domain.Comment]()
	c.mu.Unlock()

	comments, err := c.api.Social().Comments(c.ctx, postID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.commentsPost != postID {
		return
	}
	c.comments = finishLoad(c.comments, comments, len(comments) == 0, "Sin comentarios todavía", err)
}

func (c *SocialController) AddComment(postID int, text string) {
	if strings.TrimSpace(text) == "" {
		c.notify("Escribe un comentario")
		return
	}

	if _, err := c.api.Social().CreateComment(c.ctx, postID, text); err != nil {
		c.notify(failureMessage(err))
		return
	}
	c.LoadComments(postID)
	c.Load()
}

func (c *SocialController) notify(msg string) {
	c.mu.Lock()
	c.setAction(msg)
	c.mu.Unlock()
}

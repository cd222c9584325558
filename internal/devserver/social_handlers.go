package devserver

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tuninggarage/internal/config"
	"tuninggarage/internal/domain"
	"tuninggarage/internal/store/sqlite"
)

type createPostRequest struct {
	Title    *string `json:"titulo"`
	Body     *string `json:"descripcion"`
	ImageURL *string `json:"imagenURL"`
}

type createCommentRequest struct {
	Text string `json:"textoComentario"`
}

// uploadResponse is flat like the auth response: no data wrapper.
type uploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

func handleListPosts(social *sqlite.SocialRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		posts, err := social.Posts(r.Context(), user.ID)
		if err != nil {
			fail(w, err)
			return
		}
		out := make([]domain.SocialPost, 0, len(posts))
		for _, p := range posts {
			out = append(out, presentPost(p))
		}
		ok(w, "Publicaciones obtenidas", out)
	}
}

func handleCreatePost(social *sqlite.SocialRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req createPostRequest
		if err := decodeJSON(r, &req); err != nil {
			reject(w, "Solicitud inválida")
			return
		}
		if req.Body == nil || strings.TrimSpace(*req.Body) == "" {
			reject(w, "La descripción es obligatoria")
			return
		}

		id, err := social.CreatePost(r.Context(), user.ID, req.Title, req.Body, req.ImageURL)
		if err != nil {
			fail(w, err)
			return
		}

		post, err := social.Post(r.Context(), user.ID, id)
		if err != nil {
			fail(w, err)
			return
		}
		if post == nil {
			fail(w, domain.ErrNotFound)
			return
		}
		ok(w, "Publicación creada", presentPost(*post))
	}
}

func handleToggleLike(social *sqlite.SocialRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		postID, err := strconv.Atoi(chi.URLParam(r, "postID"))
		if err != nil {
			reject(w, "Publicación no encontrada")
			return
		}

		liked, err := social.ToggleLike(r.Context(), user.ID, postID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				reject(w, "Publicación no encontrada")
				return
			}
			fail(w, err)
			return
		}
		if liked {
			ok(w, "Like agregado", "Like agregado")
			return
		}
		ok(w, "Like eliminado", "Like eliminado")
	}
}

func handleListComments(social *sqlite.SocialRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := strconv.Atoi(chi.URLParam(r, "postID"))
		if err != nil {
			reject(w, "Publicación no encontrada")
			return
		}

		comments, err := social.Comments(r.Context(), postID)
		if err != nil {
			fail(w, err)
			return
		}
		out := make([]domain.Comment, 0, len(comments))
		for _, c := range comments {
			out = append(out, presentComment(c))
		}
		ok(w, "Comentarios obtenidos", out)
	}
}

func handleCreateComment(social *sqlite.SocialRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		postID, err := strconv.Atoi(chi.URLParam(r, "postID"))
		if err != nil {
			reject(w, "Publicación no encontrada")
			return
		}

		var req createCommentRequest
		if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Text) == "" {
			reject(w, "Escribe un comentario")
			return
		}

		id, err := social.AddComment(r.Context(), user.ID, postID, req.Text)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				reject(w, "Publicación no encontrada")
				return
			}
			fail(w, err)
			return
		}

		comment, err := social.Comment(r.Context(), id)
		if err != nil {
			fail(w, err)
			return
		}
		if comment == nil {
			fail(w, domain.ErrNotFound)
			return
		}
		ok(w, "Comentario agregado", presentComment(*comment))
	}
}

// handleUpload stores the single "file" part under a random name and hands
// back its public URL.
func handleUpload(cfg *config.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			writeJSON(w, http.StatusOK, uploadResponse{Success: false, Message: "Archivo inválido"})
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusOK, uploadResponse{Success: false, Message: "Falta el archivo"})
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		switch ext {
		case ".jpg", ".jpeg", ".png", ".webp":
		default:
			writeJSON(w, http.StatusOK, uploadResponse{Success: false, Message: "Formato de imagen no soportado"})
			return
		}

		filename := uuid.NewString() + ext
		dest := filepath.Join(cfg.UploadDir, filename)

		out, err := os.Create(dest)
		if err != nil {
			fail(w, err)
			return
		}
		defer out.Close()
		if _, err := io.Copy(out, file); err != nil {
			fail(w, err)
			return
		}

		writeJSON(w, http.StatusOK, uploadResponse{
			Success: true,
			Message: "Imagen subida",
			URL:     "/uploads/" + filename,
		})
	}
}

func handleServeUpload(cfg *config.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		// No separators: keeps requests inside the upload dir.
		if filename == "" || filepath.Base(filename) != filename {
			http.Error(w, "invalid filename", http.StatusBadRequest)
			return
		}
		http.ServeFile(w, r, filepath.Join(cfg.UploadDir, filename))
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"tuninggarage/internal/domain"
)

// SocialClient drives the feed: posts, likes, comments and the shared image
// upload endpoint.
type SocialClient struct {
	client *Client
}

type CreatePostRequest struct {
	Title    *string `json:"titulo,omitempty"`
	Body     string  `json:"descripcion"`
	ImageURL *string `json:"imagenURL,omitempty"`
}

type CreateCommentRequest struct {
	Text string `json:"textoComentario"`
}

// UploadResponse is the upload endpoint's flat response (no data wrapper).
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

func (s *SocialClient) Posts(ctx context.Context) ([]domain.SocialPost, error) {
	return doEnvelope[[]domain.SocialPost](ctx, s.client, http.MethodGet, "Social/posts", nil)
}

func (s *SocialClient) CreatePost(ctx context.Context, req CreatePostRequest) (domain.SocialPost, error) {
	return doEnvelope[domain.SocialPost](ctx, s.client, http.MethodPost, "Social/posts", req)
}

// ToggleLike flips the caller's like on a post and returns the backend
// confirmation message.
func (s *SocialClient) ToggleLike(ctx context.Context, postID int) (string, error) {
	return doEnvelope[string](ctx, s.client, http.MethodPost, fmt.Sprintf("Social/posts/%d/like", postID), nil)
}

func (s *SocialClient) Comments(ctx context.Context, postID int) ([]domain.Comment, error) {
	return doEnvelope[[]domain.Comment](ctx, s.client, http.MethodGet, fmt.Sprintf("Social/posts/%d/comments", postID), nil)
}

func (s *SocialClient) CreateComment(ctx context.Context, postID int, text string) (domain.Comment, error) {
	return doEnvelope[domain.Comment](ctx, s.client, http.MethodPost, fmt.Sprintf("Social/posts/%d/comments", postID), CreateCommentRequest{Text: text})
}

// UploadImage posts a single file part named "file" (fixed by the backend
// contract) and returns the public URL. Features that attach images must call
// this first and abort their create call if it fails.
func (s *SocialClient) UploadImage(ctx context.Context, filename, contentType string, content []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("write file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.baseURL+"/Social/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	raw, err := s.client.send(req)
	if err != nil {
		return "", err
	}

	var resp UploadResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &Error{Kind: KindDecode, Err: err}
	}
	if !resp.Success || resp.URL == "" {
		return "", &Error{Kind: KindDomain, Message: resp.Message}
	}
	return resp.URL, nil
}

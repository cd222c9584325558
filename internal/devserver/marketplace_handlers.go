package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"tuninggarage/internal/domain"
	"tuninggarage/internal/security"
	"tuninggarage/internal/store/sqlite"
)

type createListingRequest struct {
	Title         string  `json:"titulo"`
	Description   *string `json:"descripcion"`
	ImageURL      *string `json:"imagenURL"`
	StartingPrice float64 `json:"precioInicial"`
	Brand         *string `json:"marca"`
	Model         *string `json:"modelo"`
	Year          *int    `json:"anio"`
	Mileage       *int    `json:"kilometraje"`
	Modifications *string `json:"modificaciones"`
}

type createBidRequest struct {
	Amount  float64 `json:"montoOferta"`
	Message *string `json:"mensaje"`
}

type sendMessageRequest struct {
	Text string `json:"mensaje"`
}

func handleListListings(marketplace *sqlite.MarketplaceRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listings, err := marketplace.Listings(r.Context())
		if err != nil {
			fail(w, err)
			return
		}
		out := make([]domain.Listing, 0, len(listings))
		for _, l := range listings {
			out = append(out, presentListing(l))
		}
		ok(w, "Publicaciones obtenidas", out)
	}
}

func handleCreateListing(marketplace *sqlite.MarketplaceRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req createListingRequest
		if err := decodeJSON(r, &req); err != nil {
			reject(w, "Solicitud inválida")
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			reject(w, "El título es obligatorio")
			return
		}
		if req.StartingPrice <= 0 {
			reject(w, "El precio inicial debe ser mayor a cero")
			return
		}

		id, err := marketplace.CreateListing(r.Context(), user.ID, sqlite.ListingInput{
			Title:         req.Title,
			Description:   req.Description,
			ImageURL:      req.ImageURL,
			StartingPrice: req.StartingPrice,
			Brand:         req.Brand,
			Model:         req.Model,
			Year:          req.Year,
			Mileage:       req.Mileage,
			Modifications: req.Modifications,
		})
		if err != nil {
			fail(w, err)
			return
		}

		listing, err := marketplace.Listing(r.Context(), id)
		if err != nil {
			fail(w, err)
			return
		}
		if listing == nil {
			fail(w, domain.ErrNotFound)
			return
		}
		ok(w, "Vehículo publicado", presentListing(*listing))
	}
}

func handlePlaceBid(marketplace *sqlite.MarketplaceRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		listingID, err := strconv.Atoi(chi.URLParam(r, "listingID"))
		if err != nil {
			reject(w, "Publicación no encontrada")
			return
		}

		var req createBidRequest
		if err := decodeJSON(r, &req); err != nil {
			reject(w, "Solicitud inválida")
			return
		}

		bidID, err := marketplace.PlaceBid(r.Context(), user.ID, listingID, req.Amount, req.Message)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				reject(w, "Publicación no encontrada")
			case errors.Is(err, domain.ErrInvalidInput):
				reject(w, "La oferta debe superar el precio actual")
			case errors.Is(err, domain.ErrForbidden):
				reject(w, "No puedes ofertar por tu propia publicación")
			default:
				fail(w, err)
			}
			return
		}

		bid, err := marketplace.Bid(r.Context(), bidID)
		if err != nil {
			fail(w, err)
			return
		}
		if bid == nil {
			fail(w, domain.ErrNotFound)
			return
		}
		ok(w, "Oferta registrada", presentBid(*bid))
	}
}

func handleInitiateChat(marketplace *sqlite.MarketplaceRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		listingID, err := strconv.Atoi(chi.URLParam(r, "listingID"))
		if err != nil {
			reject(w, "Publicación no encontrada")
			return
		}

		chatID, err := marketplace.GetOrCreateChat(r.Context(), user.ID, listingID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				reject(w, "Publicación no encontrada")
			case errors.Is(err, domain.ErrForbidden):
				reject(w, "No puedes chatear contigo mismo")
			default:
				fail(w, err)
			}
			return
		}
		ok(w, "Chat listo", chatID)
	}
}

func handleChatMessages(marketplace *sqlite.MarketplaceRepo, encryptor *security.Encryptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		chatID, err := strconv.Atoi(chi.URLParam(r, "chatID"))
		if err != nil {
			reject(w, "Chat no encontrado")
			return
		}

		chat, err := loadChat(r, marketplace, user.ID, chatID)
		if err != nil {
			failChat(w, err)
			return
		}

		stored, err := marketplace.Messages(r.Context(), chatID)
		if err != nil {
			fail(w, err)
			return
		}

		messages := make([]domain.ChatMessage, 0, len(stored))
		for _, m := range stored {
			text, err := encryptor.Decrypt(m.Content)
			if err != nil {
				fail(w, err)
				return
			}
			messages = append(messages, presentChatMessage(m, text, user.ID))
		}
		chat.Messages = messages
		ok(w, "Mensajes obtenidos", chat)
	}
}

func handleSendChatMessage(marketplace *sqlite.MarketplaceRepo, encryptor *security.Encryptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		chatID, err := strconv.Atoi(chi.URLParam(r, "chatID"))
		if err != nil {
			reject(w, "Chat no encontrado")
			return
		}

		var req sendMessageRequest
		if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Text) == "" {
			reject(w, "Escribe un mensaje")
			return
		}

		if _, err := loadChat(r, marketplace, user.ID, chatID); err != nil {
			failChat(w, err)
			return
		}

		sealed, err := encryptor.Encrypt(req.Text)
		if err != nil {
			fail(w, err)
			return
		}

		messageID, err := marketplace.AddMessage(r.Context(), chatID, user.ID, sealed)
		if err != nil {
			fail(w, err)
			return
		}

		stored, err := marketplace.Message(r.Context(), messageID)
		if err != nil {
			fail(w, err)
			return
		}
		if stored == nil {
			fail(w, domain.ErrNotFound)
			return
		}
		ok(w, "Mensaje enviado", presentChatMessage(*stored, req.Text, user.ID))
	}
}

// loadChat fetches the chat header with the counterpart resolved relative
// to the caller.
func loadChat(r *http.Request, marketplace *sqlite.MarketplaceRepo, userID, chatID int) (*domain.Chat, error) {
	chat, err := marketplace.Chat(r.Context(), userID, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, domain.ErrNotFound
	}

	otherID := chat.SellerID
	if userID == chat.SellerID {
		otherID = chat.BuyerID
	}
	other, err := marketplace.Counterpart(r.Context(), otherID)
	if err != nil {
		return nil, err
	}

	return &domain.Chat{
		ID:            chat.ID,
		ListingID:     chat.ListingID,
		ListingTitle:  chat.ListingTitle,
		OtherUserID:   other.ID,
		OtherUserName: other.Name,
		OtherAvatar:   other.AvatarURL,
	}, nil
}

func failChat(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		reject(w, "Chat no encontrado")
	case errors.Is(err, domain.ErrForbidden):
		reject(w, "No participas en este chat")
	default:
		fail(w, err)
	}
}

func presentChatMessage(m sqlite.ChatMessage, text string, viewerID int) domain.ChatMessage {
	return domain.ChatMessage{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Text:       text,
		SentAt:     formatTime(m.SentAt),
		IsOwn:      m.SenderID == viewerID,
	}
}

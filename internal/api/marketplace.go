package api

import (
	"context"
	"fmt"
	"net/http"

	"tuninggarage/internal/domain"
)

// MarketplaceClient covers listings, bids and the per-listing chat.
type MarketplaceClient struct {
	client *Client
}

type CreateListingRequest struct {
	Title         string  `json:"titulo"`
	Description   string  `json:"descripcion"`
	ImageURL      *string `json:"imagenURL,omitempty"`
	StartingPrice float64 `json:"precioInicial"`
	Brand         *string `json:"marca,omitempty"`
	Model         *string `json:"modelo,omitempty"`
	Year          *int    `json:"anio,omitempty"`
	Mileage       *int    `json:"kilometraje,omitempty"`
	Modifications *string `json:"modificaciones,omitempty"`
}

type CreateBidRequest struct {
	Amount  float64 `json:"montoOferta"`
	Message *string `json:"mensaje,omitempty"`
}

type SendChatMessageRequest struct {
	Text string `json:"mensaje"`
}

func (m *MarketplaceClient) Listings(ctx context.Context) ([]domain.Listing, error) {
	return doEnvelope[[]domain.Listing](ctx, m.client, http.MethodGet, "Marketplace/listings", nil)
}

func (m *MarketplaceClient) CreateListing(ctx context.Context, req CreateListingRequest) (domain.Listing, error) {
	return doEnvelope[domain.Listing](ctx, m.client, http.MethodPost, "Marketplace/listings", req)
}

// PlaceBid submits an offer. The server is the authority on whether the
// amount beats the current price.
func (m *MarketplaceClient) PlaceBid(ctx context.Context, listingID int, req CreateBidRequest) (domain.Bid, error) {
	return doEnvelope[domain.Bid](ctx, m.client, http.MethodPost, fmt.Sprintf("Marketplace/listings/%d/bids", listingID), req)
}

// InitiateChat returns the chat id for the caller and the listing's seller,
// creating the chat on first contact.
func (m *MarketplaceClient) InitiateChat(ctx context.Context, listingID int) (int, error) {
	return doEnvelope[int](ctx, m.client, http.MethodPost, fmt.Sprintf("Marketplace/listings/%d/chat", listingID), nil)
}

func (m *MarketplaceClient) ChatMessages(ctx context.Context, chatID int) (domain.Chat, error) {
	return doEnvelope[domain.Chat](ctx, m.client, http.MethodGet, fmt.Sprintf("Marketplace/chats/%d/messages", chatID), nil)
}

func (m *MarketplaceClient) SendChatMessage(ctx context.Context, chatID int, text string) (domain.ChatMessage, error) {
	return doEnvelope[domain.ChatMessage](ctx, m.client, http.MethodPost, fmt.Sprintf("Marketplace/chats/%d/messages", chatID), SendChatMessageRequest{Text: text})
}

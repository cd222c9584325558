package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuninggarage/internal/api"
	"tuninggarage/internal/domain"
)

// listingsHandler stores published listings in memory and serves them back
// with bid-derived fields at their initial values.
type listingsHandler struct {
	mu       sync.Mutex
	listings []domain.Listing
}

func (h *listingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodPost {
		var req api.CreateListingRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		listing := domain.Listing{
			ID:            len(h.listings) + 1,
			SellerID:      1,
			SellerName:    "Ana",
			Title:         req.Title,
			Description:   &req.Description,
			ImageURL:      req.ImageURL,
			StartingPrice: req.StartingPrice,
			CurrentPrice:  req.StartingPrice,
			PublishedAt:   "2024-01-01T00:00:00",
			Status:        domain.ListingStatusActive,
			BidCount:      0,
		}
		h.listings = append(h.listings, listing)
		payload, _ := json.Marshal(listing)
		io.WriteString(w, `{"success":true,"message":"ok","data":`+string(payload)+`}`)
		return
	}

	payload, _ := json.Marshal(h.listings)
	io.WriteString(w, `{"success":true,"message":"ok","data":`+string(payload)+`}`)
}

func TestCreateListingRoundTrip(t *testing.T) {
	h := &listingsHandler{}
	client, _ := testClient(t, h)
	c := NewMarketplace(client)
	defer c.Close()

	c.CreateListing(api.CreateListingRequest{
		Title:         "Civic EK9",
		Description:   "Motor B16B, suspensión Tein",
		StartingPrice: 8500,
	}, "", "", nil)

	state := c.Listings()
	require.Equal(t, PhaseSuccess, state.Phase)
	require.Len(t, state.Payload, 1)
	assert.Equal(t, "Civic EK9", state.Payload[0].Title)
	assert.Equal(t, state.Payload[0].StartingPrice, state.Payload[0].CurrentPrice)
	assert.Equal(t, 0, state.Payload[0].BidCount)
}

func TestLowBidShortCircuits(t *testing.T) {
	var calls int
	var mu sync.Mutex
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
	}))
	c := NewMarketplace(client)
	defer c.Close()
	c.actionTTL = time.Minute

	listing := domain.Listing{ID: 1, CurrentPrice: 9000}
	c.PlaceBid(listing, 9000, "")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, calls)
	assert.Equal(t, "La oferta debe superar el precio actual", c.ActionMessage())
}

func TestListingValidationShortCircuits(t *testing.T) {
	var calls int
	var mu sync.Mutex
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
	}))
	c := NewMarketplace(client)
	defer c.Close()
	c.actionTTL = time.Minute

	c.CreateListing(api.CreateListingRequest{Title: "  ", Description: "x", StartingPrice: 100}, "", "", nil)
	c.CreateListing(api.CreateListingRequest{Title: "Civic", Description: "x", StartingPrice: 0}, "", "", nil)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, calls)
}

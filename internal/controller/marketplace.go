package controller

import (
	"strings"

	"tuninggarage/internal/api"
	"tuninggarage/internal/domain"
)

// MarketplaceController drives the vehicle listings screen: browsing,
// publishing and bidding.
type MarketplaceController struct {
	base
	api      *api.Client
	listings State[[]domain.Listing]
}

func NewMarketplace(client *api.Client) *MarketplaceController {
	return &MarketplaceController{base: newBase(), api: client}
}

func (c *MarketplaceController) Listings() State[[]domain.Listing] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listings
}

func (c *MarketplaceController) Load() {
	c.mu.Lock()
	seq := c.begin()
	c.listings = beginLoad(c.listings)
	c.mu.Unlock()

	listings, err := c.api.Marketplace().Listings(c.ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(seq) {
		return
	}
	c.listings = finishLoad(c.listings, listings, len(listings) == 0, "No hay vehículos publicados", err)
}

// CreateListing uploads the photo first when one is attached; upload failure
// aborts the publish and is reported as an upload problem, not a publish one.
func (c *MarketplaceController) CreateListing(req api.CreateListingRequest, imageName, imageType string, image []byte) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		c.notify("Completa el título y la descripción")
		return
	}
	if req.StartingPrice <= 0 {
		c.notify("El precio inicial debe ser mayor a cero")
		return
	}

	if len(image) > 0 {
		url, err := c.api.Social().UploadImage(c.ctx, imageName, imageType, image)
		if err != nil {
			c.notify("No se pudo subir la imagen: " + failureMessage(err))
			return
		}
		req.ImageURL = &url
	}

	if _, err := c.api.Marketplace().CreateListing(c.ctx, req); err != nil {
		c.notify(failureMessage(err))
		return
	}
	c.notify("Vehículo publicado")
	c.Load()
}

// PlaceBid checks the amount against the listing's current price before
// dispatch. The check is advisory; the server remains the authority.
func (c *MarketplaceController) PlaceBid(listing domain.Listing, amount float64, message string) {
	if amount <= listing.CurrentPrice {
		c.notify("La oferta debe superar el precio actual")
		return
	}

	req := api.CreateBidRequest{Amount: amount}
	if message = strings.TrimSpace(message); message != "" {
		req.Message = &message
	}

	if _, err := c.api.Marketplace().PlaceBid(c.ctx, listing.ID, req); err != nil {
		c.notify(failureMessage(err))
		return
	}
	c.notify("Oferta enviada")
	c.Load()
}

func (c *MarketplaceController) notify(msg string) {
	c.mu.Lock()
	c.setAction(msg)
	c.mu.Unlock()
}

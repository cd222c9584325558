package devserver

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tuninggarage/internal/domain"
	"tuninggarage/internal/store/sqlite"
)

// wireTime is the timestamp layout the mobile clients expect: local time,
// no zone suffix.
const wireTime = "2006-01-02T15:04:05"

func formatTime(t time.Time) string {
	return t.Format(wireTime)
}

// relativeAge renders "hace N ..." strings the feed and comments carry.
func relativeAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "hace un momento"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minuto", "minutos")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hora", "horas")
	default:
		return plural(int(d.Hours()/24), "día", "días")
	}
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("hace 1 %s", singular)
	}
	return fmt.Sprintf("hace %d %s", n, pluralForm)
}

// newTrackingNumber mints an opaque shipment reference.
func newTrackingNumber() string {
	return "TG-" + strings.ToUpper(uuid.NewString()[:8])
}

func presentUser(u *sqlite.User) *domain.User {
	return &domain.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		AvatarURL:    u.AvatarURL,
		RegisteredAt: formatTime(u.CreatedAt),
	}
}

func presentCategory(c sqlite.Category) domain.Category {
	return domain.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

func presentProduct(p sqlite.Product) domain.Product {
	return domain.Product{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		ImageURL:     p.ImageURL,
		Brand:        p.Brand,
		Model:        p.Model,
		Year:         p.Year,
		Available:    p.Available,
	}
}

func presentProducts(products []sqlite.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		out = append(out, presentProduct(p))
	}
	return out
}

// presentCart assembles the cart with its server-computed totals.
func presentCart(items []sqlite.CartItem) domain.Cart {
	cart := domain.Cart{Items: make([]domain.CartItem, 0, len(items))}
	for _, it := range items {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			UnitPrice:    it.UnitPrice,
			Quantity:     it.Quantity,
			Subtotal:     it.Subtotal,
			StockLeft:    it.Stock,
		})
		cart.Total += it.Subtotal
		cart.TotalItems += it.Quantity
	}
	return cart
}

func presentOrder(o sqlite.Order) domain.Order {
	order := domain.Order{
		ID:             o.ID,
		PlacedAt:       formatTime(o.PlacedAt),
		Total:          o.Total,
		Status:         o.Status,
		ShippingStreet: o.ShippingStreet,
		City:           o.City,
		State:          o.State,
		TrackingNumber: o.TrackingNumber,
		Details:        make([]domain.OrderDetail, 0, len(o.Details)),
	}
	for _, d := range o.Details {
		order.Details = append(order.Details, domain.OrderDetail{
			ProductID:    d.ProductID,
			ProductName:  d.ProductName,
			ProductImage: d.ProductImage,
			Quantity:     d.Quantity,
			UnitPrice:    d.UnitPrice,
			Subtotal:     d.Subtotal,
		})
	}
	return order
}

func presentPost(p sqlite.Post) domain.SocialPost {
	return domain.SocialPost{
		ID:           p.ID,
		AuthorID:     p.UserID,
		AuthorName:   p.AuthorName,
		AuthorAvatar: p.AuthorAvatar,
		Title:        p.Title,
		Body:         p.Body,
		ImageURL:     p.ImageURL,
		PublishedAt:  formatTime(p.PublishedAt),
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		LikedByMe:    p.LikedByViewer,
		RelativeAge:  relativeAge(p.PublishedAt),
	}
}

func presentComment(c sqlite.Comment) domain.Comment {
	return domain.Comment{
		ID:           c.ID,
		AuthorID:     c.UserID,
		AuthorName:   c.AuthorName,
		AuthorAvatar: c.AuthorAvatar,
		Text:         c.Body,
		PostedAt:     formatTime(c.PostedAt),
		RelativeAge:  relativeAge(c.PostedAt),
	}
}

func presentListing(l sqlite.Listing) domain.Listing {
	return domain.Listing{
		ID:            l.ID,
		SellerID:      l.SellerID,
		SellerName:    l.SellerName,
		SellerAvatar:  l.SellerAvatar,
		Title:         l.Title,
		Description:   l.Description,
		ImageURL:      l.ImageURL,
		StartingPrice: l.StartingPrice,
		CurrentPrice:  l.CurrentPrice,
		Brand:         l.Brand,
		Model:         l.Model,
		Year:          l.Year,
		Mileage:       l.Mileage,
		Modifications: l.Modifications,
		PublishedAt:   formatTime(l.PublishedAt),
		Status:        l.Status,
		BidCount:      l.BidCount,
		BestBid:       l.BestBid,
	}
}

func presentBid(b sqlite.Bid) domain.Bid {
	return domain.Bid{
		ID:           b.ID,
		BidderID:     b.BidderID,
		BidderName:   b.BidderName,
		BidderAvatar: b.BidderAvatar,
		Amount:       b.Amount,
		Message:      b.Message,
		PlacedAt:     formatTime(b.PlacedAt),
		Accepted:     b.Accepted,
	}
}

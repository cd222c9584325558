package main

import (
	"fmt"
	"strings"

	"tuninggarage/internal/controller"
	"tuninggarage/internal/domain"
)

func renderCategories(st controller.State[[]domain.Category]) string {
	return st.Render(func(cats []domain.Category) string {
		var b strings.Builder
		for _, c := range cats {
			fmt.Fprintf(&b, "[%d] %s\n", c.ID, c.Name)
		}
		return strings.TrimRight(b.String(), "\n")
	})
}

func renderProducts(st controller.State[[]domain.Product]) string {
	return st.Render(func(products []domain.Product) string {
		var b strings.Builder
		for _, p := range products {
			fmt.Fprintf(&b, "[%d] %s — $%.2f (stock %d)\n", p.ID, p.Name, p.Price, p.Stock)
		}
		return strings.TrimRight(b.String(), "\n")
	})
}

func renderProductDetail(st controller.State[domain.Product]) string {
	return st.Render(func(p domain.Product) string {
		var b strings.Builder
		fmt.Fprintf(&b, "%s — $%.2f\n", p.Name, p.Price)
		fmt.Fprintf(&b, "Categoría: %s | Stock: %d", p.CategoryName, p.Stock)
		if p.Description != nil {
			fmt.Fprintf(&b, "\n%s", *p.Description)
		}
		return b.String()
	})
}

func renderCart(st controller.State[domain.Cart]) string {
	return st.Render(func(cart domain.Cart) string {
		var b strings.Builder
		for _, it := range cart.Items {
			fmt.Fprintf(&b, "[%d] %s x%d — $%.2f\n", it.ID, it.ProductName, it.Quantity, it.Subtotal)
		}
		fmt.Fprintf(&b, "Total (%d artículos): $%.2f", cart.TotalItems, cart.Total)
		return b.String()
	})
}

func renderOrders(st controller.State[[]domain.Order]) string {
	return st.Render(func(orders []domain.Order) string {
		var b strings.Builder
		for _, o := range orders {
			fmt.Fprintf(&b, "[%d] %s — $%.2f (%s)\n", o.ID, o.PlacedAt, o.Total, o.Status)
		}
		return strings.TrimRight(b.String(), "\n")
	})
}

func renderOrderDetail(st controller.State[domain.Order]) string {
	return st.Render(func(o domain.Order) string {
		var b strings.Builder
		fmt.Fprintf(&b, "Pedido #%d — %s — $%.2f\n", o.ID, o.Status, o.Total)
		if o.TrackingNumber != nil {
			fmt.Fprintf(&b, "Seguimiento: %s\n", *o.TrackingNumber)
		}
		fmt.Fprintf(&b, "Envío: %s\n", o.ShippingStreet)
		for _, d := range o.Details {
			fmt.Fprintf(&b, "  %s x%d — $%.2f\n", d.ProductName, d.Quantity, d.Subtotal)
		}
		return strings.TrimRight(b.String(), "\n")
	})
}

func renderPosts(st controller.State[[]domain.SocialPost]) string {
	return st.Render(func(posts []domain.SocialPost) string {
		var b strings.Builder
		for _, p := range posts {
			liked := " "
			if p.LikedByMe {
				liked = "♥"
			}
			body := ""
			if p.Body != nil {
				body = *p.Body
			}
			fmt.Fprintf(&b, "[%d] %s (%s) %s\n     %s | %d likes, %d comentarios\n",
				p.ID, p.AuthorName, p.RelativeAge, liked, body, p.LikeCount, p.CommentCount)
		}
		return strings.TrimRight(b.String(), "\n")
	})
}

func renderComments(st controller.State[[]domain.Comment]) string {
	return st.Render(func(comments []domain.Comment) string {
		var b strings.Builder
		for _, c := range comments {
			fmt.Fprintf(&b, "[%d] %s (%s): %s\n", c.ID, c.AuthorName, c.RelativeAge, c.Text)
		}
		if b.Len() == 0 {
			return "Sin comentarios"
		}
		return strings.TrimRight(b.String(), "\n")
	})
}

func renderListings(st controller.State[[]domain.Listing]) string {
	return st.Render(func(listings []domain.Listing) string {
		var b strings.Builder
		for _, l := range listings {
			fmt.Fprintf(&b, "[%d] %s — $%.2f (%d ofertas, %s) vende %s\n",
				l.ID, l.Title, l.CurrentPrice, l.BidCount, l.Status, l.SellerName)
		}
		return strings.TrimRight(b.String(), "\n")
	})
}

func renderChat(st controller.State[domain.Chat]) string {
	return st.Render(func(chat domain.Chat) string {
		var b strings.Builder
		fmt.Fprintf(&b, "Chat sobre %q con %s\n", chat.ListingTitle, chat.OtherUserName)
		for _, m := range chat.Messages {
			who := m.SenderName
			if m.IsOwn {
				who = "tú"
			}
			fmt.Fprintf(&b, "  %s: %s\n", who, m.Text)
		}
		return strings.TrimRight(b.String(), "\n")
	})
}

func renderAssistant(messages []controller.AssistantMessage) string {
	var b strings.Builder
	for _, m := range messages {
		who := "AVT"
		if m.FromUser {
			who = "tú"
		}
		text := m.Text
		if m.Pending && text == "" {
			text = "..."
		}
		fmt.Fprintf(&b, "%s: %s\n", who, text)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderProfile(st controller.State[domain.Session]) string {
	return st.Render(func(sess domain.Session) string {
		return fmt.Sprintf("%s <%s> (usuario #%d)", sess.UserName, sess.UserEmail, sess.UserID)
	})
}

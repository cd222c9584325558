// Package devserver is a local backend implementing the storefront wire
// protocol over SQLite. The terminal client and the integration tests run
// against it.
package devserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"tuninggarage/internal/config"
	"tuninggarage/internal/security"
	"tuninggarage/internal/store/sqlite"
)

// NewRouter wires repositories, security services and routes.
func NewRouter(cfg *config.Server, db *sql.DB, tokens *security.TokenService, hasher *security.PasswordHasher, encryptor *security.Encryptor) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.Debug {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	users := sqlite.NewUserRepo(db)
	catalog := sqlite.NewCatalogRepo(db)
	cart := sqlite.NewCartRepo(db)
	orders := sqlite.NewOrderRepo(db)
	social := sqlite.NewSocialRepo(db)
	marketplace := sqlite.NewMarketplaceRepo(db)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/Auth", func(r chi.Router) {
		r.Post("/register", handleRegister(users, tokens, hasher))
		r.Post("/login", handleLogin(users, tokens, hasher))
	})

	r.Get("/uploads/{filename}", handleServeUpload(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(tokens, users))

		r.Put("/Users/avatar", handleUpdateAvatar(users))

		r.Route("/Products", func(r chi.Router) {
			r.Get("/", handleListProducts(catalog))
			r.Get("/categories", handleListCategories(catalog))
			r.Get("/search", handleSearchProducts(catalog))
			r.Get("/{productID}", handleGetProduct(catalog))
		})

		r.Route("/Cart", func(r chi.Router) {
			r.Get("/", handleGetCart(cart))
			r.Post("/", handleAddToCart(cart))
			r.Delete("/clear", handleClearCart(cart))
			r.Put("/{cartItemID}", handleUpdateQuantity(cart))
			r.Delete("/{cartItemID}", handleRemoveFromCart(cart))
		})

		r.Route("/Orders", func(r chi.Router) {
			r.Get("/", handleListOrders(orders))
			r.Post("/", handleCheckout(orders))
			r.Get("/{orderID}", handleGetOrder(orders))
		})

		r.Route("/Social", func(r chi.Router) {
			r.Post("/upload", handleUpload(cfg))
			r.Get("/posts", handleListPosts(social))
			r.Post("/posts", handleCreatePost(social))
			r.Post("/posts/{postID}/like", handleToggleLike(social))
			r.Get("/posts/{postID}/comments", handleListComments(social))
			r.Post("/posts/{postID}/comments", handleCreateComment(social))
		})

		r.Route("/Marketplace", func(r chi.Router) {
			r.Get("/listings", handleListListings(marketplace))
			r.Post("/listings", handleCreateListing(marketplace))
			r.Post("/listings/{listingID}/bids", handlePlaceBid(marketplace))
			r.Post("/listings/{listingID}/chat", handleInitiateChat(marketplace))
			r.Get("/chats/{chatID}/messages", handleChatMessages(marketplace, encryptor))
			r.Post("/chats/{chatID}/messages", handleSendChatMessage(marketplace, encryptor))
		})
	})

	return r
}

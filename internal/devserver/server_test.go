package devserver_test

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuninggarage/internal/api"
	"tuninggarage/internal/config"
	"tuninggarage/internal/devserver"
	"tuninggarage/internal/security"
	"tuninggarage/internal/session"
	"tuninggarage/internal/store/sqlite"
)

type testEnv struct {
	srv *httptest.Server
	db  *sql.DB
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	db, err := sqlite.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(db))
	require.NoError(t, sqlite.Seed(db))

	cfg := &config.Server{
		JWTSecret:  "test-secret",
		EncryptKey: "test-encrypt-key",
		UploadDir:  filepath.Join(dir, "uploads"),
		TokenTTL:   time.Hour,
	}
	require.NoError(t, os.MkdirAll(cfg.UploadDir, 0o755))

	tokens := security.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := security.NewPasswordHasher(4)
	encryptor, err := security.NewEncryptor([]byte(cfg.EncryptKey))
	require.NoError(t, err)

	srv := httptest.NewServer(devserver.NewRouter(cfg, db, tokens, hasher, encryptor))
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, db: db, dir: dir}
}

// signUp registers a fresh user and returns a client authenticated as them.
func (e *testEnv) signUp(t *testing.T, name, email string) *api.Client {
	t.Helper()

	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	client, err := api.New(store, api.Config{BaseURL: e.srv.URL})
	require.NoError(t, err)

	resp, err := client.Auth().Register(context.Background(), api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NoError(t, store.Save(resp.Token, resp.User.ID, resp.User.Name, resp.User.Email))
	return client
}

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	client, err := api.New(store, api.Config{BaseURL: env.srv.URL})
	require.NoError(t, err)

	reg, err := client.Auth().Register(ctx, api.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "Ana", reg.User.Name)

	login, err := client.Auth().Login(ctx, api.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	_, err = client.Auth().Login(ctx, api.LoginRequest{Email: "ana@example.com", Password: "wrongpass"})
	require.Error(t, err)
	assert.True(t, api.IsDomain(err))
	assert.Equal(t, "Credenciales incorrectas", err.Error())

	_, err = client.Auth().Register(ctx, api.RegisterRequest{Name: "Otra", Email: "ana@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "El correo ya está registrado", err.Error())
}

func TestUnauthenticatedRequestIsRejected(t *testing.T) {
	env := newTestEnv(t)

	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	client, err := api.New(store, api.Config{BaseURL: env.srv.URL})
	require.NoError(t, err)

	_, err = client.Cart().Get(context.Background())
	require.Error(t, err)
	assert.False(t, api.IsDomain(err), "401 surfaces as a transport error")
}

func TestCartTotalsAreServerComputed(t *testing.T) {
	env := newTestEnv(t)
	client := env.signUp(t, "Ana", "ana@example.com")
	ctx := context.Background()

	products, err := client.Products().List(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	_, err = client.Cart().Add(ctx, products[0].ID, 2)
	require.NoError(t, err)
	_, err = client.Cart().Add(ctx, products[1].ID, 3)
	require.NoError(t, err)

	cart, err := client.Cart().Get(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	var total float64
	var totalItems int
	for _, it := range cart.Items {
		assert.Equal(t, it.UnitPrice*float64(it.Quantity), it.Subtotal)
		total += it.Subtotal
		totalItems += it.Quantity
	}
	assert.Equal(t, total, cart.Total)
	assert.Equal(t, totalItems, cart.TotalItems)

	// Bare-integer quantity update.
	_, err = client.Cart().UpdateQuantity(ctx, cart.Items[0].ID, 1)
	require.NoError(t, err)
	cart, err = client.Cart().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	_, err = client.Cart().Remove(ctx, cart.Items[1].ID)
	require.NoError(t, err)
	cart, err = client.Cart().Get(ctx)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestAddBeyondStockIsRejected(t *testing.T) {
	env := newTestEnv(t)
	client := env.signUp(t, "Ana", "ana@example.com")
	ctx := context.Background()

	products, err := client.Products().List(ctx, nil)
	require.NoError(t, err)

	_, err = client.Cart().Add(ctx, products[0].ID, products[0].Stock+1)
	require.Error(t, err)
	assert.True(t, api.IsDomain(err))
	assert.Equal(t, "Stock insuficiente", err.Error())
}

func TestCheckoutEmptiesCartAndDecrementsStock(t *testing.T) {
	env := newTestEnv(t)
	client := env.signUp(t, "Ana", "ana@example.com")
	ctx := context.Background()

	products, err := client.Products().List(ctx, nil)
	require.NoError(t, err)
	product := products[0]

	_, err = client.Cart().Add(ctx, product.ID, 2)
	require.NoError(t, err)

	order, err := client.Orders().Create(ctx, api.CreateOrderRequest{
		ShippingStreet: "Av. Siempre Viva 742",
		ContactPhone:   "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, product.Price*2, order.Total)
	assert.Equal(t, "Pendiente", order.Status)
	require.NotNil(t, order.TrackingNumber)
	assert.Contains(t, *order.TrackingNumber, "TG-")
	require.Len(t, order.Details, 1)
	assert.Equal(t, 2, order.Details[0].Quantity)

	cart, err := client.Cart().Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	refreshed, err := client.Products().Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Stock-2, refreshed.Stock)

	orders, err := client.Orders().ListMine(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestCheckoutWithEmptyCartIsRejected(t *testing.T) {
	env := newTestEnv(t)
	client := env.signUp(t, "Ana", "ana@example.com")

	_, err := client.Orders().Create(context.Background(), api.CreateOrderRequest{
		ShippingStreet: "Av. Siempre Viva 742",
		ContactPhone:   "555-0100",
	})
	require.Error(t, err)
	assert.Equal(t, "Tu carrito está vacío", err.Error())
}

func TestFeedLikesAndComments(t *testing.T) {
	env := newTestEnv(t)
	ana := env.signUp(t, "Ana", "ana@example.com")
	luis := env.signUp(t, "Luis", "luis@example.com")
	ctx := context.Background()

	post, err := ana.Social().CreatePost(ctx, api.CreatePostRequest{Body: "Mi proyecto EK9"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", post.AuthorName)
	assert.Equal(t, 0, post.LikeCount)

	// Toggle twice returns the post to its original state.
	_, err = luis.Social().ToggleLike(ctx, post.ID)
	require.NoError(t, err)
	posts, err := luis.Social().Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, posts[0].LikeCount)
	assert.True(t, posts[0].LikedByMe)

	_, err = luis.Social().ToggleLike(ctx, post.ID)
	require.NoError(t, err)
	posts, err = luis.Social().Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, posts[0].LikeCount)
	assert.False(t, posts[0].LikedByMe)

	comment, err := luis.Social().CreateComment(ctx, post.ID, "¡Qué máquina!")
	require.NoError(t, err)
	assert.Equal(t, "Luis", comment.AuthorName)
	assert.NotEmpty(t, comment.RelativeAge)

	posts, err = ana.Social().Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, posts[0].CommentCount)
}

func TestListingBidsAndDerivedPrice(t *testing.T) {
	env := newTestEnv(t)
	seller := env.signUp(t, "Ana", "ana@example.com")
	buyer := env.signUp(t, "Luis", "luis@example.com")
	ctx := context.Background()

	desc := "Motor B16B, suspensión Tein"
	listing, err := seller.Marketplace().CreateListing(ctx, api.CreateListingRequest{
		Title:         "Civic EK9",
		Description:   desc,
		StartingPrice: 8500,
	})
	require.NoError(t, err)
	assert.Equal(t, 8500.0, listing.CurrentPrice)
	assert.Equal(t, 0, listing.BidCount)
	assert.Nil(t, listing.BestBid)
	assert.Equal(t, "Activo", listing.Status)

	// Sellers cannot bid on their own listing.
	_, err = seller.Marketplace().PlaceBid(ctx, listing.ID, api.CreateBidRequest{Amount: 9000})
	require.Error(t, err)
	assert.True(t, api.IsDomain(err))

	// A bid below the current price is rejected.
	_, err = buyer.Marketplace().PlaceBid(ctx, listing.ID, api.CreateBidRequest{Amount: 8000})
	require.Error(t, err)
	assert.Equal(t, "La oferta debe superar el precio actual", err.Error())

	bid, err := buyer.Marketplace().PlaceBid(ctx, listing.ID, api.CreateBidRequest{Amount: 9000})
	require.NoError(t, err)
	assert.Equal(t, "Luis", bid.BidderName)

	listings, err := buyer.Marketplace().Listings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, 9000.0, listings[0].CurrentPrice)
	assert.Equal(t, 1, listings[0].BidCount)
	require.NotNil(t, listings[0].BestBid)
	assert.Equal(t, 9000.0, *listings[0].BestBid)
}

func TestChatMessagesRoundTripAndRestEncryption(t *testing.T) {
	env := newTestEnv(t)
	seller := env.signUp(t, "Ana", "ana@example.com")
	buyer := env.signUp(t, "Luis", "luis@example.com")
	ctx := context.Background()

	desc := "x"
	listing, err := seller.Marketplace().CreateListing(ctx, api.CreateListingRequest{
		Title: "Civic EK9", Description: desc, StartingPrice: 8500,
	})
	require.NoError(t, err)

	chatID, err := buyer.Marketplace().InitiateChat(ctx, listing.ID)
	require.NoError(t, err)
	assert.NotZero(t, chatID)

	// Lazily created once per listing per buyer.
	again, err := buyer.Marketplace().InitiateChat(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, chatID, again)

	const plaintext = "¿Sigue disponible el Civic?"
	sent, err := buyer.Marketplace().SendChatMessage(ctx, chatID, plaintext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, sent.Text)
	assert.True(t, sent.IsOwn)

	// The stored row never contains the plaintext.
	var stored string
	require.NoError(t, env.db.QueryRow(`SELECT content FROM chat_messages WHERE id = ?`, sent.ID).Scan(&stored))
	assert.NotEqual(t, plaintext, stored)
	assert.NotContains(t, stored, "Sigue disponible")

	// The seller reads the same thread, with ownership flipped.
	chat, err := seller.Marketplace().ChatMessages(ctx, chatID)
	require.NoError(t, err)
	assert.Equal(t, "Civic EK9", chat.ListingTitle)
	assert.Equal(t, "Luis", chat.OtherUserName)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, plaintext, chat.Messages[0].Text)
	assert.False(t, chat.Messages[0].IsOwn)

	// Outsiders cannot read the thread.
	outsider := env.signUp(t, "Eva", "eva@example.com")
	_, err = outsider.Marketplace().ChatMessages(ctx, chatID)
	require.Error(t, err)
	assert.True(t, api.IsDomain(err))
}

func TestImageUploadAndServing(t *testing.T) {
	env := newTestEnv(t)
	client := env.signUp(t, "Ana", "ana@example.com")
	ctx := context.Background()

	url, err := client.Social().UploadImage(ctx, "proyecto.jpg", "image/jpeg", []byte("JPEGDATA"))
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/")

	_, err = client.Social().UploadImage(ctx, "anim.gif", "image/gif", []byte("GIF89a"))
	require.Error(t, err)
	assert.True(t, api.IsDomain(err))
	assert.Equal(t, "Formato de imagen no soportado", err.Error())
}

func TestAvatarUpdatePersists(t *testing.T) {
	env := newTestEnv(t)
	client := env.signUp(t, "Ana", "ana@example.com")
	ctx := context.Background()

	url, err := client.Social().UploadImage(ctx, "avatar.png", "image/png", []byte("PNGDATA"))
	require.NoError(t, err)

	user, err := client.Auth().UpdateAvatar(ctx, url)
	require.NoError(t, err)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, url, *user.AvatarURL)

	// The avatar survives a fresh login.
	login, err := client.Auth().Login(ctx, api.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, login.User.AvatarURL)
	assert.Equal(t, url, *login.User.AvatarURL)

	_, err = client.Auth().UpdateAvatar(ctx, "   ")
	require.Error(t, err)
	assert.True(t, api.IsDomain(err))
}

func TestProductSearchIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	client := env.signUp(t, "Ana", "ana@example.com")
	ctx := context.Background()

	results, err := client.Products().Search(ctx, "turbo")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	upper, err := client.Products().Search(ctx, "TURBO")
	require.NoError(t, err)
	assert.Equal(t, len(results), len(upper))

	none, err := client.Products().Search(ctx, "no-existe-esto")
	require.NoError(t, err)
	assert.Empty(t, none)
}

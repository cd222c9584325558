package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tuninggarage/internal/domain"
)

// Listing is a stored marketplace row with bid-derived fields computed in
// the query: the current price is the best bid, or the starting price while
// no bids exist.
type Listing struct {
	ID            int
	SellerID      int
	SellerName    string
	SellerAvatar  *string
	Title         string
	Description   *string
	ImageURL      *string
	StartingPrice float64
	CurrentPrice  float64
	Brand         *string
	Model         *string
	Year          *int
	Mileage       *int
	Modifications *string
	PublishedAt   time.Time
	Status        string
	BidCount      int
	BestBid       *float64
}

type Bid struct {
	ID           int
	ListingID    int
	BidderID     int
	BidderName   string
	BidderAvatar *string
	Amount       float64
	Message      *string
	PlacedAt     time.Time
	Accepted     bool
}

type Chat struct {
	ID           int
	ListingID    int
	ListingTitle string
	SellerID     int
	BuyerID      int
}

// ChatMessage carries content as stored, which is ciphertext. Decryption
// happens at the HTTP layer.
type ChatMessage struct {
	ID         int
	ChatID     int
	SenderID   int
	SenderName string
	Content    string
	SentAt     time.Time
}

// ListingInput is the seller-supplied part of a new listing.
type ListingInput struct {
	Title         string
	Description   *string
	ImageURL      *string
	StartingPrice float64
	Brand         *string
	Model         *string
	Year          *int
	Mileage       *int
	Modifications *string
}

type MarketplaceRepo struct {
	db *sql.DB
}

func NewMarketplaceRepo(db *sql.DB) *MarketplaceRepo {
	return &MarketplaceRepo{db: db}
}

const listingColumns = `
	l.id, l.seller_id, u.name, u.avatar_url, l.title, l.description, l.image_url,
	l.starting_price,
	COALESCE((SELECT MAX(b.amount) FROM bids b WHERE b.listing_id = l.id), l.starting_price),
	l.brand, l.model, l.year, l.mileage, l.modifications, l.published_at, l.status,
	(SELECT COUNT(*) FROM bids b WHERE b.listing_id = l.id),
	(SELECT MAX(b.amount) FROM bids b WHERE b.listing_id = l.id)
`

func (r *MarketplaceRepo) Listings(ctx context.Context) ([]Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM listings l JOIN users u ON u.id = l.seller_id
		ORDER BY l.published_at DESC, l.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

func (r *MarketplaceRepo) Listing(ctx context.Context, id int) (*Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM listings l JOIN users u ON u.id = l.seller_id WHERE l.id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *MarketplaceRepo) CreateListing(ctx context.Context, sellerID int, in ListingInput) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO listings (seller_id, title, description, image_url, starting_price,
			brand, model, year, mileage, modifications, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sellerID, in.Title, in.Description, in.ImageURL, in.StartingPrice,
		in.Brand, in.Model, in.Year, in.Mileage, in.Modifications, domain.ListingStatusActive)
	if err != nil {
		return 0, fmt.Errorf("insert listing: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("listing id: %w", err)
	}
	return int(id), nil
}

// PlaceBid enforces the auction rules: the listing must be active, sellers
// cannot bid on their own listing, and the amount must beat the current
// price.
func (r *MarketplaceRepo) PlaceBid(ctx context.Context, bidderID, listingID int, amount float64, message *string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin bid: %w", err)
	}
	defer tx.Rollback()

	var sellerID int
	var status string
	var current float64
	err = tx.QueryRowContext(ctx, `
		SELECT l.seller_id, l.status,
			COALESCE((SELECT MAX(b.amount) FROM bids b WHERE b.listing_id = l.id), l.starting_price)
		FROM listings l WHERE l.id = ?
	`, listingID).Scan(&sellerID, &status, &current)
	if err == sql.ErrNoRows {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("check listing: %w", err)
	}
	if status != domain.ListingStatusActive {
		return 0, domain.ErrListingClosed
	}
	if sellerID == bidderID {
		return 0, domain.ErrForbidden
	}
	if amount <= current {
		return 0, domain.ErrInvalidInput
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bids (listing_id, bidder_id, amount, message) VALUES (?, ?, ?, ?)`,
		listingID, bidderID, amount, message)
	if err != nil {
		return 0, fmt.Errorf("insert bid: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("bid id: %w", err)
	}
	return int(id), tx.Commit()
}

func (r *MarketplaceRepo) Bid(ctx context.Context, bidID int) (*Bid, error) {
	var b Bid
	err := r.db.QueryRowContext(ctx, `
		SELECT b.id, b.listing_id, b.bidder_id, u.name, u.avatar_url, b.amount,
			b.message, b.placed_at, b.accepted
		FROM bids b JOIN users u ON u.id = b.bidder_id WHERE b.id = ?
	`, bidID).Scan(&b.ID, &b.ListingID, &b.BidderID, &b.BidderName, &b.BidderAvatar,
		&b.Amount, &b.Message, &b.PlacedAt, &b.Accepted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bid: %w", err)
	}
	return &b, nil
}

// GetOrCreateChat returns the chat between the buyer and the listing's
// seller, creating it on first contact. Sellers cannot open a chat with
// themselves.
func (r *MarketplaceRepo) GetOrCreateChat(ctx context.Context, buyerID, listingID int) (int, error) {
	var sellerID int
	err := r.db.QueryRowContext(ctx,
		`SELECT seller_id FROM listings WHERE id = ?`, listingID).Scan(&sellerID)
	if err == sql.ErrNoRows {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("check listing: %w", err)
	}
	if sellerID == buyerID {
		return 0, domain.ErrForbidden
	}

	var chatID int
	err = r.db.QueryRowContext(ctx,
		`SELECT id FROM chats WHERE listing_id = ? AND buyer_id = ?`, listingID, buyerID).Scan(&chatID)
	if err == nil {
		return chatID, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("find chat: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO chats (listing_id, buyer_id) VALUES (?, ?)`, listingID, buyerID)
	if err != nil {
		return 0, fmt.Errorf("insert chat: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("chat id: %w", err)
	}
	return int(id), nil
}

// Chat returns the chat header, only for its two participants.
func (r *MarketplaceRepo) Chat(ctx context.Context, userID, chatID int) (*Chat, error) {
	var c Chat
	err := r.db.QueryRowContext(ctx, `
		SELECT c.id, c.listing_id, l.title, l.seller_id, c.buyer_id
		FROM chats c JOIN listings l ON l.id = c.listing_id WHERE c.id = ?
	`, chatID).Scan(&c.ID, &c.ListingID, &c.ListingTitle, &c.SellerID, &c.BuyerID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chat: %w", err)
	}
	if userID != c.SellerID && userID != c.BuyerID {
		return nil, domain.ErrForbidden
	}
	return &c, nil
}

func (r *MarketplaceRepo) Messages(ctx context.Context, chatID int) ([]ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.chat_id, m.sender_id, u.name, m.content, m.sent_at
		FROM chat_messages m JOIN users u ON u.id = m.sender_id
		WHERE m.chat_id = ? ORDER BY m.sent_at, m.id
	`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var messages []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.SenderName, &m.Content, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *MarketplaceRepo) AddMessage(ctx context.Context, chatID, senderID int, content string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (chat_id, sender_id, content) VALUES (?, ?, ?)`,
		chatID, senderID, content)
	if err != nil {
		return 0, fmt.Errorf("insert chat message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("chat message id: %w", err)
	}
	return int(id), nil
}

func (r *MarketplaceRepo) Message(ctx context.Context, messageID int) (*ChatMessage, error) {
	var m ChatMessage
	err := r.db.QueryRowContext(ctx, `
		SELECT m.id, m.chat_id, m.sender_id, u.name, m.content, m.sent_at
		FROM chat_messages m JOIN users u ON u.id = m.sender_id WHERE m.id = ?
	`, messageID).Scan(&m.ID, &m.ChatID, &m.SenderID, &m.SenderName, &m.Content, &m.SentAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chat message: %w", err)
	}
	return &m, nil
}

// ChatUser is the public identity shown as a chat counterpart.
type ChatUser struct {
	ID        int
	Name      string
	AvatarURL *string
}

func (r *MarketplaceRepo) Counterpart(ctx context.Context, userID int) (*ChatUser, error) {
	var u ChatUser
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, avatar_url FROM users WHERE id = ?`, userID).
		Scan(&u.ID, &u.Name, &u.AvatarURL)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get counterpart: %w", err)
	}
	return &u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*Listing, error) {
	var l Listing
	err := row.Scan(
		&l.ID, &l.SellerID, &l.SellerName, &l.SellerAvatar, &l.Title, &l.Description,
		&l.ImageURL, &l.StartingPrice, &l.CurrentPrice, &l.Brand, &l.Model, &l.Year,
		&l.Mileage, &l.Modifications, &l.PublishedAt, &l.Status, &l.BidCount, &l.BestBid,
	)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	return &l, nil
}

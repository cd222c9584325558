package domain

// Session holds the authenticated user's identity as persisted on this device.
type Session struct {
	Token     string `json:"token"`
	UserID    int    `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// LoggedIn reports whether the session carries a token.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// User mirrors the backend user payload.
type User struct {
	ID           int     `json:"userID"`
	Name         string  `json:"nombre"`
	Email        string  `json:"email"`
	Phone        *string `json:"telefono,omitempty"`
	AvatarURL    *string `json:"avatarURL,omitempty"`
	RegisteredAt string  `json:"fechaRegistro"`
}

// Category is a product category.
type Category struct {
	ID          int     `json:"categoryID"`
	Name        string  `json:"nombre"`
	Description *string `json:"descripcion,omitempty"`
	ImageURL    *string `json:"imagenURL,omitempty"`
}

// Product is a catalog item.
type Product struct {
	ID           int     `json:"productID"`
	CategoryID   int     `json:"categoryID"`
	CategoryName string  `json:"categoriaNombre"`
	Name         string  `json:"nombre"`
	Description  *string `json:"descripcion,omitempty"`
	Price        float64 `json:"precio"`
	Stock        int     `json:"stock"`
	ImageURL     *string `json:"imagenURL,omitempty"`
	Brand        *string `json:"marca,omitempty"`
	Model        *string `json:"modelo,omitempty"`
	Year         *string `json:"anio,omitempty"`
	Available    bool    `json:"disponible"`
}

// CartItem is a single line in the cart. Subtotal and stock are server-computed.
type CartItem struct {
	ID           int     `json:"cartItemID"`
	ProductID    int     `json:"productID"`
	ProductName  string  `json:"productoNombre"`
	ProductImage *string `json:"productoImagen,omitempty"`
	UnitPrice    float64 `json:"precioUnitario"`
	Quantity     int     `json:"cantidad"`
	Subtotal     float64 `json:"subtotal"`
	StockLeft    int     `json:"stockDisponible"`
}

// Cart is the full cart with server-computed totals.
type Cart struct {
	Items      []CartItem `json:"items"`
	Total      float64    `json:"total"`
	TotalItems int        `json:"totalItems"`
}

// OrderDetail is one product line inside an order.
type OrderDetail struct {
	ProductID    int     `json:"productID"`
	ProductName  string  `json:"productoNombre"`
	ProductImage *string `json:"productoImagen,omitempty"`
	Quantity     int     `json:"cantidad"`
	UnitPrice    float64 `json:"precioUnitario"`
	Subtotal     float64 `json:"subtotal"`
}

// Order is a placed order. Only its status changes after creation, server-side.
type Order struct {
	ID             int           `json:"orderID"`
	PlacedAt       string        `json:"fechaPedido"`
	Total          float64       `json:"total"`
	Status         string        `json:"estatus"`
	ShippingStreet string        `json:"direccionEnvio"`
	City           *string       `json:"ciudad,omitempty"`
	State          *string       `json:"estado,omitempty"`
	TrackingNumber *string       `json:"numeroSeguimiento,omitempty"`
	Details        []OrderDetail `json:"detalles"`
}

// Order statuses as reported by the backend.
const (
	OrderStatusPending   = "Pendiente"
	OrderStatusPacking   = "Empacando"
	OrderStatusInTransit = "En camino"
	OrderStatusDelivered = "Entregado"
	OrderStatusCancelled = "Cancelado"
)

// SocialPost is a feed entry. Counts and the like flag are per-requester.
type SocialPost struct {
	ID           int     `json:"postID"`
	AuthorID     int     `json:"userID"`
	AuthorName   string  `json:"usuarioNombre"`
	AuthorAvatar *string `json:"usuarioAvatar,omitempty"`
	Title        *string `json:"titulo,omitempty"`
	Body         *string `json:"descripcion,omitempty"`
	ImageURL     *string `json:"imagenURL,omitempty"`
	PublishedAt  string  `json:"fechaPublicacion"`
	LikeCount    int     `json:"totalLikes"`
	CommentCount int     `json:"totalComentarios"`
	LikedByMe    bool    `json:"usuarioLeDioLike"`
	RelativeAge  string  `json:"tiempoTranscurrido"`
}

// Comment belongs to a social post.
type Comment struct {
	ID           int     `json:"commentID"`
	AuthorID     int     `json:"userID"`
	AuthorName   string  `json:"usuarioNombre"`
	AuthorAvatar *string `json:"usuarioAvatar,omitempty"`
	Text         string  `json:"textoComentario"`
	PostedAt     string  `json:"fechaComentario"`
	RelativeAge  string  `json:"tiempoTranscurrido"`
}

// Listing is a marketplace vehicle open for bidding. CurrentPrice, BestBid and
// BidCount are derived from accepted and leading bids on the server.
type Listing struct {
	ID            int      `json:"listingID"`
	SellerID      int      `json:"vendedorID"`
	SellerName    string   `json:"vendedorNombre"`
	SellerAvatar  *string  `json:"vendedorAvatar,omitempty"`
	Title         string   `json:"titulo"`
	Description   *string  `json:"descripcion,omitempty"`
	ImageURL      *string  `json:"imagenURL,omitempty"`
	StartingPrice float64  `json:"precioInicial"`
	CurrentPrice  float64  `json:"precioActual"`
	Brand         *string  `json:"marca,omitempty"`
	Model         *string  `json:"modelo,omitempty"`
	Year          *int     `json:"anio,omitempty"`
	Mileage       *int     `json:"kilometraje,omitempty"`
	Modifications *string  `json:"modificaciones,omitempty"`
	PublishedAt   string   `json:"fechaPublicacion"`
	Status        string   `json:"estatus"`
	BidCount      int      `json:"totalOfertas"`
	BestBid       *float64 `json:"mejorOferta,omitempty"`
}

// Listing statuses.
const (
	ListingStatusActive = "Activo"
	ListingStatusClosed = "Cerrado"
)

// Bid is an offer placed on a listing.
type Bid struct {
	ID           int     `json:"bidID"`
	BidderID     int     `json:"compradorID"`
	BidderName   string  `json:"compradorNombre"`
	BidderAvatar *string `json:"compradorAvatar,omitempty"`
	Amount       float64 `json:"montoOferta"`
	Message      *string `json:"mensaje,omitempty"`
	PlacedAt     string  `json:"fechaOferta"`
	Accepted     bool    `json:"aceptada"`
}

// Chat is a buyer/seller conversation attached to a listing.
type Chat struct {
	ID            int           `json:"chatID"`
	ListingID     int           `json:"listingID"`
	ListingTitle  string        `json:"listingTitulo"`
	OtherUserID   int           `json:"otroUsuarioID"`
	OtherUserName string        `json:"otroUsuarioNombre"`
	OtherAvatar   *string       `json:"otroUsuarioAvatar,omitempty"`
	Messages      []ChatMessage `json:"mensajes"`
}

// ChatMessage is one message inside a marketplace chat.
type ChatMessage struct {
	ID         int    `json:"messageID"`
	SenderID   int    `json:"senderUserID"`
	SenderName string `json:"senderNombre"`
	Text       string `json:"mensaje"`
	SentAt     string `json:"fechaEnvio"`
	IsOwn      bool   `json:"esPropio"`
}

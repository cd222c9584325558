// Command garage is the terminal front end: a small REPL over the screen
// controllers. It renders states, relays navigation intents and hosts the
// assistant chat.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tuninggarage/internal/api"
	"tuninggarage/internal/assistant"
	"tuninggarage/internal/config"
	"tuninggarage/internal/controller"
	"tuninggarage/internal/session"
)

type shell struct {
	auth        *controller.AuthController
	products    *controller.ProductsController
	cart        *controller.CartController
	orders      *controller.OrdersController
	social      *controller.SocialController
	marketplace *controller.MarketplaceController
	chat        *controller.ChatController
	profile     *controller.ProfileController
	assistant   *controller.AssistantController

	in  *bufio.Scanner
	out *os.File
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, err := session.Open(cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("failed to open session store: %v", err)
	}

	client, err := api.New(store, api.Config{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.Timeout,
		LogLevel: api.ParseLogLevel(cfg.HTTPLog),
	})
	if err != nil {
		log.Fatalf("failed to build API client: %v", err)
	}

	sh := &shell{
		auth:        controller.NewAuth(client, store),
		products:    controller.NewProducts(client),
		cart:        controller.NewCart(client),
		orders:      controller.NewOrders(client),
		social:      controller.NewSocial(client),
		marketplace: controller.NewMarketplace(client),
		chat:        controller.NewChat(client),
		profile:     controller.NewProfile(client, store),
		in:          bufio.NewScanner(os.Stdin),
		out:         os.Stdout,
	}

	// The assistant is optional: without a key the rest of the app works.
	if cfg.GeminiAPIKey != "" {
		ai, err := assistant.New(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("assistant disabled: %v", err)
		} else {
			sh.assistant = controller.NewAssistant(ai)
		}
	}

	if store.LoggedIn() {
		sh.printf("Sesión activa: %s <%s>\n", store.UserName(), store.UserEmail())
	} else {
		sh.printf("No has iniciado sesión. Usa: login <email> <password>\n")
	}
	sh.printf("Escribe 'help' para ver los comandos.\n")

	sh.run()
}

func (s *shell) run() {
	for {
		s.printf("> ")
		if !s.in.Scan() {
			return
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		if cmd == "exit" || cmd == "quit" {
			return
		}
		s.dispatch(cmd, strings.TrimSpace(rest))
	}
}

func (s *shell) dispatch(cmd, rest string) {
	switch cmd {
	case "help":
		s.help()
	case "login":
		email, password, _ := strings.Cut(rest, " ")
		s.navigate(s.auth.Login(email, strings.TrimSpace(password)))
		s.showAuth()
	case "register":
		parts := strings.SplitN(rest, " ", 3)
		if len(parts) < 3 {
			s.printf("uso: register <nombre> <email> <password>\n")
			return
		}
		s.navigate(s.auth.Register(parts[0], parts[1], parts[2], ""))
		s.showAuth()
	case "logout":
		s.navigate(s.auth.Logout())
	case "categories":
		s.products.LoadCategories()
		s.printf("%s\n", renderCategories(s.products.Categories()))
	case "products":
		var categoryID *int
		if rest != "" {
			id, err := strconv.Atoi(rest)
			if err != nil {
				s.printf("uso: products [categoryID]\n")
				return
			}
			categoryID = &id
		}
		s.products.Load(categoryID)
		s.printf("%s\n", renderProducts(s.products.Products()))
	case "search":
		s.products.Search(rest)
		s.printf("%s\n", renderProducts(s.products.Products()))
	case "product":
		id, err := strconv.Atoi(rest)
		if err != nil {
			s.printf("uso: product <id>\n")
			return
		}
		s.products.Open(id)
		s.printf("%s\n", renderProductDetail(s.products.Detail()))
	case "cart":
		s.cart.Load()
		s.printf("%s\n", renderCart(s.cart.State()))
	case "add":
		s.addToCart(rest)
	case "qty":
		s.setQuantity(rest)
	case "remove":
		id, err := strconv.Atoi(rest)
		if err != nil {
			s.printf("uso: remove <cartItemID>\n")
			return
		}
		s.cart.Remove(id)
		s.action(s.cart.ActionMessage())
	case "clear":
		s.cart.Clear()
		s.action(s.cart.ActionMessage())
	case "checkout":
		street, phone, _ := strings.Cut(rest, ";")
		nav := s.cart.Checkout(api.CreateOrderRequest{
			ShippingStreet: strings.TrimSpace(street),
			ContactPhone:   strings.TrimSpace(phone),
		})
		s.action(s.cart.ActionMessage())
		s.navigate(nav)
	case "orders":
		s.orders.Load()
		s.printf("%s\n", renderOrders(s.orders.List()))
	case "order":
		id, err := strconv.Atoi(rest)
		if err != nil {
			s.printf("uso: order <id>\n")
			return
		}
		s.orders.Open(id)
		s.printf("%s\n", renderOrderDetail(s.orders.Detail()))
	case "feed":
		s.social.Load()
		s.printf("%s\n", renderPosts(s.social.Posts()))
	case "post":
		title, body, found := strings.Cut(rest, ";")
		if !found {
			title, body = "", rest
		}
		s.social.CreatePost(strings.TrimSpace(title), strings.TrimSpace(body), "", "", nil)
		s.action(s.social.ActionMessage())
	case "like":
		id, err := strconv.Atoi(rest)
		if err != nil {
			s.printf("uso: like <postID>\n")
			return
		}
		s.social.ToggleLike(id)
		s.action(s.social.ActionMessage())
	case "comments":
		id, err := strconv.Atoi(rest)
		if err != nil {
			s.printf("uso: comments <postID>\n")
			return
		}
		s.social.LoadComments(id)
		s.printf("%s\n", renderComments(s.social.Comments()))
	case "comment":
		idStr, text, _ := strings.Cut(rest, " ")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			s.printf("uso: comment <postID> <texto>\n")
			return
		}
		s.social.AddComment(id, strings.TrimSpace(text))
		s.action(s.social.ActionMessage())
	case "listings":
		s.marketplace.Load()
		s.printf("%s\n", renderListings(s.marketplace.Listings()))
	case "sell":
		s.createListing(rest)
	case "bid":
		s.placeBid(rest)
	case "chat":
		id, err := strconv.Atoi(rest)
		if err != nil {
			s.printf("uso: chat <listingID>\n")
			return
		}
		s.chat.Open(id)
		s.printf("%s\n", renderChat(s.chat.State()))
	case "say":
		s.chat.Send(rest)
		s.printf("%s\n", renderChat(s.chat.State()))
	case "ai":
		if s.assistant == nil {
			s.printf("Asistente no disponible: configura GEMINI_API_KEY\n")
			return
		}
		s.assistant.Send(rest, nil)
		s.printf("%s\n", renderAssistant(s.assistant.Messages()))
	case "ai-clear":
		if s.assistant == nil {
			s.printf("Asistente no disponible: configura GEMINI_API_KEY\n")
			return
		}
		s.assistant.Clear()
		s.printf("%s\n", renderAssistant(s.assistant.Messages()))
	case "profile":
		s.printf("%s\n", renderProfile(s.profile.State()))
	default:
		s.printf("Comando desconocido: %s (prueba 'help')\n", cmd)
	}
}

func (s *shell) addToCart(rest string) {
	idStr, qtyStr, _ := strings.Cut(rest, " ")
	id, err1 := strconv.Atoi(idStr)
	qty, err2 := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err1 != nil || err2 != nil {
		s.printf("uso: add <productID> <cantidad>\n")
		return
	}

	s.products.Open(id)
	detail := s.products.Detail()
	stock := qty
	if detail.Phase == controller.PhaseSuccess {
		stock = detail.Payload.Stock
	}
	s.cart.Add(id, qty, stock)
	s.action(s.cart.ActionMessage())
}

func (s *shell) setQuantity(rest string) {
	idStr, qtyStr, _ := strings.Cut(rest, " ")
	id, err1 := strconv.Atoi(idStr)
	qty, err2 := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err1 != nil || err2 != nil {
		s.printf("uso: qty <cartItemID> <cantidad>\n")
		return
	}

	s.cart.Load()
	state := s.cart.State()
	if state.Phase != controller.PhaseSuccess {
		s.printf("%s\n", renderCart(state))
		return
	}
	for _, item := range state.Payload.Items {
		if item.ID == id {
			s.cart.SetQuantity(item, qty)
			s.action(s.cart.ActionMessage())
			return
		}
	}
	s.printf("No hay un artículo %d en el carrito\n", id)
}

func (s *shell) createListing(rest string) {
	parts := strings.SplitN(rest, ";", 3)
	if len(parts) < 3 {
		s.printf("uso: sell <titulo>;<precioInicial>;<descripcion>\n")
		return
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		s.printf("El precio inicial debe ser un número\n")
		return
	}
	s.marketplace.CreateListing(api.CreateListingRequest{
		Title:         strings.TrimSpace(parts[0]),
		Description:   strings.TrimSpace(parts[2]),
		StartingPrice: price,
	}, "", "", nil)
	s.action(s.marketplace.ActionMessage())
}

func (s *shell) placeBid(rest string) {
	idStr, amountStr, _ := strings.Cut(rest, " ")
	id, err1 := strconv.Atoi(idStr)
	amount, err2 := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
	if err1 != nil || err2 != nil {
		s.printf("uso: bid <listingID> <monto>\n")
		return
	}

	s.marketplace.Load()
	state := s.marketplace.Listings()
	if state.Phase != controller.PhaseSuccess {
		s.printf("%s\n", renderListings(state))
		return
	}
	for _, listing := range state.Payload {
		if listing.ID == id {
			s.marketplace.PlaceBid(listing, amount, "")
			s.action(s.marketplace.ActionMessage())
			return
		}
	}
	s.printf("No existe la publicación %d\n", id)
}

func (s *shell) showAuth() {
	st := s.auth.State()
	switch st.Phase {
	case controller.PhaseSuccess:
		s.printf("%s\n", st.Payload)
	case controller.PhaseError:
		s.printf("%s\n", st.Message)
	}
}

func (s *shell) navigate(nav controller.Nav) {
	if nav != controller.NavNone {
		s.printf("→ %s\n", nav)
	}
}

func (s *shell) action(msg string) {
	if msg != "" {
		s.printf("%s\n", msg)
	}
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *shell) help() {
	s.printf(`Comandos:
  login <email> <password>        register <nombre> <email> <password>
  logout                          profile
  categories                      products [categoryID]
  search <texto>                  product <id>
  cart                            add <productID> <cantidad>
  qty <cartItemID> <cantidad>     remove <cartItemID>
  clear                           checkout <calle>;<telefono>
  orders                          order <id>
  feed                            post [titulo;]<descripcion>
  like <postID>                   comments <postID>
  comment <postID> <texto>        listings
  sell <titulo>;<precio>;<desc>   bid <listingID> <monto>
  chat <listingID>                say <texto>
  ai <mensaje>                    ai-clear
  exit
`)
}

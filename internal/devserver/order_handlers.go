package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"tuninggarage/internal/domain"
	"tuninggarage/internal/store/sqlite"
)

type checkoutRequest struct {
	ShippingStreet string  `json:"direccionEnvio"`
	City           *string `json:"ciudad"`
	State          *string `json:"estado"`
	PostalCode     *string `json:"codigoPostal"`
	ContactPhone   string  `json:"telefonoContacto"`
	PaymentMethod  *string `json:"metodoPago"`
}

func handleListOrders(orders *sqlite.OrderRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		list, err := orders.ListMine(r.Context(), user.ID)
		if err != nil {
			fail(w, err)
			return
		}
		out := make([]domain.Order, 0, len(list))
		for _, o := range list {
			out = append(out, presentOrder(o))
		}
		ok(w, "Pedidos obtenidos", out)
	}
}

func handleGetOrder(orders *sqlite.OrderRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		id, err := strconv.Atoi(chi.URLParam(r, "orderID"))
		if err != nil {
			reject(w, "Pedido no encontrado")
			return
		}

		order, err := orders.Get(r.Context(), user.ID, id)
		if err != nil {
			fail(w, err)
			return
		}
		if order == nil {
			reject(w, "Pedido no encontrado")
			return
		}
		ok(w, "Pedido obtenido", presentOrder(*order))
	}
}

func handleCheckout(orders *sqlite.OrderRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req checkoutRequest
		if err := decodeJSON(r, &req); err != nil {
			reject(w, "Solicitud inválida")
			return
		}
		if strings.TrimSpace(req.ShippingStreet) == "" || strings.TrimSpace(req.ContactPhone) == "" {
			reject(w, "Completa la dirección y el teléfono de contacto")
			return
		}

		orderID, err := orders.Checkout(r.Context(), user.ID, sqlite.ShippingInput{
			Street:        req.ShippingStreet,
			City:          req.City,
			State:         req.State,
			PostalCode:    req.PostalCode,
			ContactPhone:  req.ContactPhone,
			PaymentMethod: req.PaymentMethod,
		}, newTrackingNumber())
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				reject(w, "Tu carrito está vacío")
				return
			}
			fail(w, err)
			return
		}

		order, err := orders.Get(r.Context(), user.ID, orderID)
		if err != nil {
			fail(w, err)
			return
		}
		if order == nil {
			fail(w, domain.ErrNotFound)
			return
		}
		ok(w, "Pedido creado", presentOrder(*order))
	}
}

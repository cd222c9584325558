package devserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tuninggarage/internal/domain"
	"tuninggarage/internal/store/sqlite"
)

type addToCartRequest struct {
	ProductID int `json:"productID"`
	Quantity  int `json:"cantidad"`
}

func handleGetCart(cart *sqlite.CartRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		items, err := cart.Items(r.Context(), user.ID)
		if err != nil {
			fail(w, err)
			return
		}
		ok(w, "Carrito obtenido", presentCart(items))
	}
}

func handleAddToCart(cart *sqlite.CartRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		var req addToCartRequest
		if err := decodeJSON(r, &req); err != nil {
			reject(w, "Solicitud inválida")
			return
		}
		if req.Quantity < 1 {
			reject(w, "Cantidad inválida")
			return
		}

		if err := cart.Add(r.Context(), user.ID, req.ProductID, req.Quantity); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				reject(w, "Producto no encontrado")
				return
			}
			fail(w, err)
			return
		}
		ok(w, "Producto agregado", "Producto agregado al carrito")
	}
}

// handleUpdateQuantity reads the new quantity as a bare JSON integer body.
func handleUpdateQuantity(cart *sqlite.CartRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		itemID, err := strconv.Atoi(chi.URLParam(r, "cartItemID"))
		if err != nil {
			reject(w, "Artículo no encontrado")
			return
		}

		var quantity int
		if err := decodeJSON(r, &quantity); err != nil {
			reject(w, "Cantidad inválida")
			return
		}

		if err := cart.UpdateQuantity(r.Context(), user.ID, itemID, quantity); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				reject(w, "Artículo no encontrado")
				return
			}
			fail(w, err)
			return
		}
		ok(w, "Cantidad actualizada", "Cantidad actualizada")
	}
}

func handleRemoveFromCart(cart *sqlite.CartRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)

		itemID, err := strconv.Atoi(chi.URLParam(r, "cartItemID"))
		if err != nil {
			reject(w, "Artículo no encontrado")
			return
		}

		if err := cart.Remove(r.Context(), user.ID, itemID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				reject(w, "Artículo no encontrado")
				return
			}
			fail(w, err)
			return
		}
		ok(w, "Producto eliminado", "Producto eliminado del carrito")
	}
}

func handleClearCart(cart *sqlite.CartRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if err := cart.Clear(r.Context(), user.ID); err != nil {
			fail(w, err)
			return
		}
		ok(w, "Carrito vaciado", "Carrito vaciado")
	}
}

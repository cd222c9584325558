package devserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tuninggarage/internal/domain"
	"tuninggarage/internal/store/sqlite"
)

func handleListCategories(catalog *sqlite.CatalogRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := catalog.Categories(r.Context())
		if err != nil {
			fail(w, err)
			return
		}
		out := make([]domain.Category, 0, len(categories))
		for _, c := range categories {
			out = append(out, presentCategory(c))
		}
		ok(w, "Categorías obtenidas", out)
	}
}

func handleListProducts(catalog *sqlite.CatalogRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var categoryID *int
		if raw := r.URL.Query().Get("categoryId"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				reject(w, "Categoría inválida")
				return
			}
			categoryID = &id
		}

		products, err := catalog.Products(r.Context(), categoryID)
		if err != nil {
			fail(w, err)
			return
		}
		ok(w, "Productos obtenidos", presentProducts(products))
	}
}

func handleGetProduct(catalog *sqlite.CatalogRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "productID"))
		if err != nil {
			reject(w, "Producto no encontrado")
			return
		}

		product, err := catalog.Product(r.Context(), id)
		if err != nil {
			fail(w, err)
			return
		}
		if product == nil {
			reject(w, "Producto no encontrado")
			return
		}
		ok(w, "Producto obtenido", presentProduct(*product))
	}
}

func handleSearchProducts(catalog *sqlite.CatalogRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		products, err := catalog.Search(r.Context(), query)
		if err != nil {
			fail(w, err)
			return
		}
		ok(w, "Búsqueda completada", presentProducts(products))
	}
}

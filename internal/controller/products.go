package controller

import (
	"strings"

	"tuninggarage/internal/api"
	"tuninggarage/internal/domain"
)

// ProductsController drives the catalog screen: category strip, product grid
// and the detail view.
type ProductsController struct {
	base
	api        *api.Client
	categories State[[]domain.Category]
	products   State[[]domain.Product]
	detail     State[domain.Product]
}

func NewProducts(client *api.Client) *ProductsController {
	return &ProductsController{base: newBase(), api: client}
}

func (c *ProductsController) Categories() State[[]domain.Category] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories
}

func (c *ProductsController) Products() State[[]domain.Product] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products
}

func (c *ProductsController) Detail() State[domain.Product] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detail
}

func (c *ProductsController) LoadCategories() {
	c.mu.Lock()
	c.categories = beginLoad(c.categories)
	c.mu.Unlock()

	cats, err := c.api.Products().Categories(c.ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = finishLoad(c.categories, cats, len(cats) == 0, "No hay categorías", err)
}

// Load fetches the grid, optionally filtered to one category. Superseded
// loads are discarded when they finally return.
func (c *ProductsController) Load(categoryID *int) {
	c.mu.Lock()
	seq := c.begin()
	c.products = beginLoad(c.products)
	c.mu.Unlock()

	products, err := c.api.Products().List(c.ctx, categoryID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(seq) {
		return
	}
	c.products = finishLoad(c.products, products, len(products) == 0, "No hay productos disponibles", err)
}

// Search with a blank query falls back to the unfiltered grid.
func (c *ProductsController) Search(query string) {
	if strings.TrimSpace(query) == "" {
		c.Load(nil)
		return
	}

	c.mu.Lock()
	seq := c.begin()
	c.products = beginLoad(c.products)
	c.mu.Unlock()

	products, err := c.api.Products().Search(c.ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(seq) {
		return
	}
	c.products = finishLoad(c.products, products, len(products) == 0, "Sin resultados para la búsqueda", err)
}

func (c *ProductsController) Open(productID int) {
	c.mu.Lock()
	c.detail = Loading[domain.Product]()
	c.mu.Unlock()

	product, err := c.api.Products().Get(c.ctx, productID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.detail = Errored[domain.Product](failureMessage(err))
		return
	}
	c.detail = Success(product)
}

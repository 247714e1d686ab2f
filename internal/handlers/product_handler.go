package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"

	"warung/internal/middleware"
	"warung/internal/services"
	"warung/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AssetStore is the slice of the asset store the upload path needs. Deletion
// runs on the cleanup worker, not here.
type AssetStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

// ProductHandler handles HTTP requests for the catalog: the public shop
// pages and the owner-only admin operations.
type ProductHandler struct {
	productService *services.ProductService
	assets         AssetStore
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, assets AssetStore) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		assets:         assets,
		validate:       validator.New(),
	}
}

// RegisterPublicRoutes registers the routes anyone may call.
func (h *ProductHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:id", h.HandleGetProduct)
}

// RegisterAdminRoutes registers the owner-only routes; the router passed in
// must already sit behind the auth middleware.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Get("/products", h.HandleListOwnProducts)
	adminRoutes.Post("/products", h.HandleCreateProduct)
	adminRoutes.Put("/products/:id", h.HandleUpdateProduct)
	adminRoutes.Delete("/products/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns one catalog page with pagination metadata.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", services.DefaultPageSize)

	result, err := h.productService.ListProducts(page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.productService.GetProduct(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return err
	}
	return c.JSON(product)
}

// HandleListOwnProducts returns the products created by the caller.
func (h *ProductHandler) HandleListOwnProducts(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	products, err := h.productService.ListOwnProducts(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// ProductForm carries the multipart fields of the add/edit product form.
type ProductForm struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,min=5,max=400"`
}

// parseProductForm reads the multipart form fields. A price that is not a
// number comes back as a field error, like any other validation failure.
func (h *ProductHandler) parseProductForm(c *fiber.Ctx) (ProductForm, map[string]string) {
	form := ProductForm{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return form, map[string]string{"price": "Price must be a number"}
	}
	form.Price = price

	if err := h.validate.Struct(form); err != nil {
		return form, fieldErrors(err)
	}
	return form, nil
}

// HandleCreateProduct creates a product owned by the caller. The image part
// is mandatory and only accepted image types are stored; everything else is
// a validation error attributing the image field.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	form, errs := h.parseProductForm(c)
	if errs != nil {
		return validationFailed(c, errs, form)
	}

	image, err := c.FormFile("image")
	if err != nil || !storage.IsAcceptedImage(image) {
		return validationFailed(c,
			map[string]string{"image": "Attached file is not an image!"}, form)
	}

	imageURL, err := h.assets.Save(image)
	if err != nil {
		return err
	}

	product, err := h.productService.CreateProduct(user.ID, services.ProductInput{
		Title:       form.Title,
		Price:       form.Price,
		Description: form.Description,
	}, imageURL)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces a product's mutable fields. Only the owner may
// update; a fresh image part swaps the stored asset.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	form, errs := h.parseProductForm(c)
	if errs != nil {
		return validationFailed(c, errs, form)
	}

	// Image is optional on edit, but when present it must be an image.
	newImageURL := ""
	if image, err := c.FormFile("image"); err == nil {
		if !storage.IsAcceptedImage(image) {
			return validationFailed(c,
				map[string]string{"image": "Attached file is not an image!"}, form)
		}
		if newImageURL, err = h.assets.Save(image); err != nil {
			return err
		}
	}

	product, err := h.productService.UpdateProduct(user.ID, c.Params("id"), services.ProductInput{
		Title:       form.Title,
		Price:       form.Price,
		Description: form.Description,
	}, newImageURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You are not authorised to edit the product!",
			})
		}
		return err
	}

	return c.JSON(product)
}

// HandleDeleteProduct deletes a product. Ownership mismatch is a distinct
// 403, not a generic failure; a successful delete also removed the product
// from every cart that referenced it.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	err := h.productService.DeleteProduct(user.ID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found!",
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You are not authorised to delete the product!",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Deleting the product failed!",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Success! Product Deleted",
	})
}

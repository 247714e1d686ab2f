package services_test

import (
	"testing"

	"warung/internal/models"
	"warung/internal/repositories"
	"warung/internal/services"
	"warung/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func seedCatalog(t *testing.T, repo *repositories.MockProductRepository, ownerID string, count int) []models.Product {
	t.Helper()
	products := make([]models.Product, 0, count)
	for i := 0; i < count; i++ {
		product := models.Product{
			Title:       "Book " + string(rune('A'+i)),
			Price:       9.99,
			Description: "A very good book",
			ImageURL:    "/images/book.png",
			OwnerID:     ownerID,
		}
		assert.NoError(t, repo.Create(&product))
		products = append(products, product)
	}
	return products
}

func TestProductService_ListProducts_Pagination(t *testing.T) {
	productRepo := repositories.NewMockProductRepository(nil)
	productService := services.NewProductService(productRepo, nil)

	seeded := seedCatalog(t, productRepo, "owner-1", 5)

	// Middle page: two items, neighbours on both sides.
	page, err := productService.ListProducts(2, 2)
	assert.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, seeded[2].ID, page.Products[0].ID)
	assert.Equal(t, seeded[3].ID, page.Products[1].ID)
	assert.Equal(t, 2, page.CurrentPage)
	assert.True(t, page.HasNextPage)
	assert.True(t, page.HasPreviousPage)
	assert.Equal(t, 3, page.NextPage)
	assert.Equal(t, 1, page.PreviousPage)
	assert.Equal(t, 3, page.LastPage)
	assert.Equal(t, int64(5), page.TotalItems)

	// First page has no previous neighbour.
	page, err = productService.ListProducts(1, 2)
	assert.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.True(t, page.HasNextPage)
	assert.False(t, page.HasPreviousPage)

	// Last page is short and has no next neighbour.
	page, err = productService.ListProducts(3, 2)
	assert.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPreviousPage)

	// Past the end: empty page, never an error.
	page, err = productService.ListProducts(99, 2)
	assert.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.False(t, page.HasNextPage)
}

func TestProductService_ListProducts_ClampsPage(t *testing.T) {
	productRepo := repositories.NewMockProductRepository(nil)
	productService := services.NewProductService(productRepo, nil)

	seeded := seedCatalog(t, productRepo, "owner-1", 3)

	for _, badPage := range []int{0, -7} {
		page, err := productService.ListProducts(badPage, 2)
		assert.NoError(t, err)
		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, seeded[0].ID, page.Products[0].ID)
		assert.False(t, page.HasPreviousPage)
	}

	// Bad page size falls back to the default.
	page, err := productService.ListProducts(1, 0)
	assert.NoError(t, err)
	assert.Len(t, page.Products, services.DefaultPageSize)
}

func TestProductService_ListOwnProducts(t *testing.T) {
	productRepo := repositories.NewMockProductRepository(nil)
	productService := services.NewProductService(productRepo, nil)

	seedCatalog(t, productRepo, "owner-1", 2)
	seedCatalog(t, productRepo, "owner-2", 3)

	owned, err := productService.ListOwnProducts("owner-2")
	assert.NoError(t, err)
	assert.Len(t, owned, 3)
	for _, p := range owned {
		assert.Equal(t, "owner-2", p.OwnerID)
	}
}

func TestProductService_UpdateProduct(t *testing.T) {
	productRepo := repositories.NewMockProductRepository(nil)
	mockPub := new(MockEventPublisher)
	productService := services.NewProductService(productRepo, mockPub)

	seeded := seedCatalog(t, productRepo, "owner-1", 1)
	input := services.ProductInput{Title: "Updated title", Price: 19.99, Description: "Updated description"}

	// Someone who is not the owner cannot touch it.
	_, err := productService.UpdateProduct("intruder", seeded[0].ID, input, "")
	assert.ErrorIs(t, err, services.ErrNotOwner)
	unchanged, _ := productRepo.GetByID(seeded[0].ID)
	assert.Equal(t, seeded[0].Title, unchanged.Title)

	// Owner update without a new image keeps the asset and publishes nothing.
	updated, err := productService.UpdateProduct("owner-1", seeded[0].ID, input, "")
	assert.NoError(t, err)
	assert.Equal(t, "Updated title", updated.Title)
	assert.Equal(t, seeded[0].ImageURL, updated.ImageURL)
	mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)

	// A new image swaps the URL and enqueues the old asset for cleanup.
	mockPub.On("Publish", rabbitmq.AssetCleanupQueue, mock.Anything).Return(nil).Once()
	updated, err = productService.UpdateProduct("owner-1", seeded[0].ID, input, "/images/new.png")
	assert.NoError(t, err)
	assert.Equal(t, "/images/new.png", updated.ImageURL)
	mockPub.AssertExpectations(t)

	// Unknown product
	_, err = productService.UpdateProduct("owner-1", "no-such-id", input, "")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	cartRepo := repositories.NewMockCartRepository()
	productRepo := repositories.NewMockProductRepository(cartRepo)
	mockPub := new(MockEventPublisher)
	productService := services.NewProductService(productRepo, mockPub)
	cartService := services.NewCartService(cartRepo, productRepo)

	seeded := seedCatalog(t, productRepo, "owner-1", 2)
	assert.NoError(t, cartService.AddToCart("buyer-1", seeded[0].ID))
	assert.NoError(t, cartService.AddToCart("buyer-1", seeded[1].ID))
	assert.NoError(t, cartService.AddToCart("buyer-2", seeded[0].ID))

	// Not the owner: the product and the carts stay as they were.
	err := productService.DeleteProduct("intruder", seeded[0].ID)
	assert.ErrorIs(t, err, services.ErrNotOwner)
	stillThere, err := productRepo.GetByID(seeded[0].ID)
	assert.NoError(t, err)
	assert.NotNil(t, stillThere)

	// Owner delete removes the product and its line from every cart.
	mockPub.On("Publish", rabbitmq.AssetCleanupQueue, mock.Anything).Return(nil).Once()
	err = productService.DeleteProduct("owner-1", seeded[0].ID)
	assert.NoError(t, err)
	mockPub.AssertExpectations(t)

	_, err = productRepo.GetByID(seeded[0].ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	buyerOneCart, err := cartService.GetCart("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, buyerOneCart, 1)
	assert.Equal(t, seeded[1].ID, buyerOneCart[0].Product.ID)

	buyerTwoCart, err := cartService.GetCart("buyer-2")
	assert.NoError(t, err)
	assert.Empty(t, buyerTwoCart)

	// Unknown product
	err = productService.DeleteProduct("owner-1", "no-such-id")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

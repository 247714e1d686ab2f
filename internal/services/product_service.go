package services

import (
	"errors"
	"fmt"
	"math"

	"warung/internal/models"
	"warung/internal/repositories"
)

// DefaultPageSize is the catalog page size.
const DefaultPageSize = 2

// ProductPage is one page of the catalog plus pagination metadata.
type ProductPage struct {
	Products        []models.Product `json:"products"`
	CurrentPage     int              `json:"currentPage"`
	HasNextPage     bool             `json:"hasNextPage"`
	HasPreviousPage bool             `json:"hasPreviousPage"`
	NextPage        int              `json:"nextPage"`
	PreviousPage    int              `json:"previousPage"`
	LastPage        int              `json:"lastPage"`
	TotalItems      int64            `json:"totalItems"`
}

// ProductInput carries the mutable product fields from a validated form.
type ProductInput struct {
	Title       string
	Price       float64
	Description string
}

// ProductService handles catalog access and the ownership guard.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts returns one catalog page. Pages are 1-indexed; values below 1
// are clamped to 1 rather than producing a storage-defined negative offset.
func (s *ProductService) ListProducts(page, pageSize int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	products, err := s.repo.List((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products:        products,
		CurrentPage:     page,
		HasNextPage:     int64(pageSize*page) < total,
		HasPreviousPage: page > 1,
		NextPage:        page + 1,
		PreviousPage:    page - 1,
		LastPage:        int(math.Ceil(float64(total) / float64(pageSize))),
		TotalItems:      total,
	}, nil
}

// ListOwnProducts returns the products created by the given user.
func (s *ProductService) ListOwnProducts(ownerID string) ([]models.Product, error) {
	return s.repo.ListByOwner(ownerID)
}

// GetProduct retrieves a single product.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct persists a new product owned by the given user. The image has
// already been validated and stored; imageURL is its stored path.
func (s *ProductService) CreateProduct(ownerID string, input ProductInput, imageURL string) (*models.Product, error) {
	product := &models.Product{
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    imageURL,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces the mutable fields of a product. Only the owner may
// update it. A non-empty newImageURL swaps the stored image and enqueues the
// old asset for cleanup; the response never waits for the file deletion.
func (s *ProductService) UpdateProduct(ownerID, productID string, input ProductInput, newImageURL string) (*models.Product, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != ownerID {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotOwner)
	}

	product.Title = input.Title
	product.Price = input.Price
	product.Description = input.Description

	oldImageURL := ""
	if newImageURL != "" {
		oldImageURL = product.ImageURL
		product.ImageURL = newImageURL
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	publishAssetCleanup(s.publisher, oldImageURL)
	return product, nil
}

// DeleteProduct removes a product. Only the owner may delete it; the cart
// cascade happens inside the repository transaction. The image asset is
// enqueued for cleanup after the record is gone.
func (s *ProductService) DeleteProduct(ownerID, productID string) error {
	product, err := s.GetProduct(productID)
	if err != nil {
		return err
	}
	if product.OwnerID != ownerID {
		return fmt.Errorf("product %s: %w", productID, ErrNotOwner)
	}

	if err := s.repo.Delete(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return err
	}

	publishAssetCleanup(s.publisher, product.ImageURL)
	return nil
}

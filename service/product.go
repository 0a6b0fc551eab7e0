package service

import (
	"context"

	"github.com/ooyyss26/product-api/models"
	"github.com/ooyyss26/product-api/repository"
)

type ProductService interface {
	CreateProduct(ctx context.Context, name string, price float64) (int64, error)
	ListProducts(ctx context.Context, search string) ([]models.ProductResponse, error)
	GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error)
	UpdateProduct(ctx context.Context, id int64, name string, price float64) error
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) CreateProduct(ctx context.Context, name string, price float64) (int64, error) {
	return s.repo.Create(ctx, name, price)
}

func (s *productService) ListProducts(ctx context.Context, search string) ([]models.ProductResponse, error) {
	products, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	response := make([]models.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, p.Response())
	}
	return response, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := p.Response()
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, name string, price float64) error {
	return s.repo.Update(ctx, id, name, price)
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

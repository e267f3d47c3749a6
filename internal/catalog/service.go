package catalog

import (
	"context"
	"fmt"
)

// Service exposes the in-memory catalog snapshot. The snapshot is loaded once
// at boot; the table is not written to afterwards.
type Service interface {
	Load(ctx context.Context) error
	List() []Product
	ByName(name string) (Product, bool)
	ByID(id int64) (Product, bool)
}

type service struct {
	repo Repository

	products []Product
	byName   map[string]Product
	byID     map[int64]Product
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// Load pulls all products and indexes them by display name and id. Two
// products sharing a name are indistinguishable: the later row wins. The
// storefront relies on names being unique.
func (s *service) Load(ctx context.Context) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	byName := make(map[string]Product, len(products))
	byID := make(map[int64]Product, len(products))
	for _, p := range products {
		byName[p.Name] = p
		byID[p.ID] = p
	}

	s.products = products
	s.byName = byName
	s.byID = byID
	return nil
}

func (s *service) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *service) ByName(name string) (Product, bool) {
	p, ok := s.byName[name]
	return p, ok
}

func (s *service) ByID(id int64) (Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

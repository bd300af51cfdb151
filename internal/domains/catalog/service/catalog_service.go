package service

import (
	"context"
	"fmt"
	"strings"

	"storefront-backend/internal/domains/catalog/model"
	repo "storefront-backend/internal/domains/catalog/repository"
)

type CatalogService struct {
	repository repo.RepositoryInterface
	converter  CurrencyConverter
}

func NewCatalogService(r repo.RepositoryInterface, converter CurrencyConverter) ServiceInterface {
	return &CatalogService{
		repository: r,
		converter:  converter,
	}
}

// GetProduct implements ServiceInterface.GetProduct
func (s *CatalogService) GetProduct(ctx context.Context, slug, currency string) (*model.ProductView, error) {
	if currency == "" {
		currency = s.converter.BaseCurrency()
	}
	currency = strings.ToUpper(currency)

	product, err := s.repository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return s.buildView(ctx, product, currency)
}

func (s *CatalogService) buildView(ctx context.Context, p *model.Product, currency string) (*model.ProductView, error) {
	price, err := s.converter.Convert(ctx, p.Price, currency)
	if err != nil {
		return nil, err
	}

	view := &model.ProductView{
		ID:                  p.ID,
		Name:                p.Name,
		Slug:                p.Slug,
		Brand:               p.Brand,
		Category:            p.Category,
		SubCategory:         p.SubCategory,
		Price:               price,
		Stock:               p.Stock,
		Image:               p.Image,
		Gallery:             p.Gallery,
		SellGlobally:        p.SellGlobally,
		RestrictedCountries: p.RestrictedCountries,
		AllowedCountries:    p.AllowedCountries,
		DeliveryDays:        p.DeliveryDays,
		Currency:            currency,
	}

	if p.OldPrice != nil {
		oldPrice, err := s.converter.Convert(ctx, *p.OldPrice, currency)
		if err != nil {
			return nil, err
		}
		view.OldPrice = &oldPrice
	}

	view.Variants = make([]model.VariantView, 0, len(p.Variants))
	for _, v := range p.Variants {
		vv := model.VariantView{
			ID:     v.ID,
			Color:  v.Color,
			Stock:  v.Stock,
			Images: v.Images,
		}

		if v.Price != nil {
			converted, err := s.converter.Convert(ctx, *v.Price, currency)
			if err != nil {
				return nil, err
			}
			vv.Price = &converted
		}

		for _, sz := range v.Sizes {
			sv := model.SizeView{
				ID:     sz.ID,
				Name:   sz.Name,
				Stock:  sz.Stock,
				Images: sz.Images,
			}
			if sz.Price != nil {
				converted, err := s.converter.Convert(ctx, *sz.Price, currency)
				if err != nil {
					return nil, err
				}
				sv.Price = &converted
			}
			vv.Sizes = append(vv.Sizes, sv)
		}

		view.Variants = append(view.Variants, vv)
	}

	return view, nil
}

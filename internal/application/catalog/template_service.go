package catalog

import (
	"context"
	"strconv"

	"github.com/lotledger/core/internal/domain/catalog"
	"github.com/lotledger/core/internal/domain/shared"
	gocache "github.com/patrickmn/go-cache"
)

// TemplateService manages product templates. Templates are immutable after
// creation, so cached reads never go stale.
type TemplateService struct {
	templates catalog.TemplateRepository
	tx        shared.TransactionManager
	cache     *gocache.Cache
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templates catalog.TemplateRepository, tx shared.TransactionManager) *TemplateService {
	return &TemplateService{
		templates: templates,
		tx:        tx,
		cache:     gocache.New(gocache.NoExpiration, 0),
	}
}

// Create creates a new product template
func (s *TemplateService) Create(ctx context.Context, name string, specs catalog.SpecDefinitions) (*catalog.ProductTemplate, error) {
	template, err := catalog.NewProductTemplate(name, specs)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		exists, err := s.templates.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return shared.ErrDuplicateName
		}
		return s.templates.Save(ctx, template)
	})
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(cacheKey(template.ID), template)
	return template, nil
}

// Get returns a template by id
func (s *TemplateService) Get(ctx context.Context, id int64) (*catalog.ProductTemplate, error) {
	if cached, ok := s.cache.Get(cacheKey(id)); ok {
		return cached.(*catalog.ProductTemplate), nil
	}

	template, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(cacheKey(id), template)
	return template, nil
}

// List returns all templates ordered by id ascending
func (s *TemplateService) List(ctx context.Context) ([]catalog.ProductTemplate, error) {
	return s.templates.FindAll(ctx)
}

func cacheKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/category/domain"
	"github.com/smallbiznis/comercio/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("category.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	term := strings.TrimSpace(req.Search)
	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		if term != "" && !matchesTerm(&items[i], term) {
			continue
		}
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

// matchesTerm applies the free-text list filter: substring containment over
// the text fields, plus an exact ID match when the term parses as an integer.
func matchesTerm(c *domain.Category, term string) bool {
	if strings.Contains(c.Name, term) {
		return true
	}
	if c.Description != nil && strings.Contains(*c.Description, term) {
		return true
	}
	if n, err := strconv.ParseInt(term, 10, 64); err == nil && int64(c.ID) == n {
		return true
	}
	return false
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	categoryID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		return nil, domain.ErrInvalidName
	}
	description, err := normalizeDescription(req.Description)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Category{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, s.db, c); err != nil {
		return nil, err
	}

	resp := toResponse(c)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	categoryID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 100 {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Description != nil {
		description, err := normalizeDescription(req.Description)
		if err != nil {
			return nil, err
		}
		item.Description = description
	}

	item.UpdatedAt = time.Now().UTC()
	affected, err := s.repo.Update(ctx, s.db, item)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		existing, err := s.repo.FindByID(ctx, s.db, categoryID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrConflict
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	categoryID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	// Products reference categories with RESTRICT, so the delete fails while
	// any product still points here.
	if err := s.repo.Delete(ctx, s.db, categoryID); err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.ErrInUse
		}
		return err
	}
	return nil
}

func toResponse(c *domain.Category) domain.Response {
	return domain.Response{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func normalizeDescription(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	description := strings.TrimSpace(*raw)
	if description == "" {
		return nil, nil
	}
	if len(description) > 500 {
		return nil, domain.ErrInvalidDescription
	}
	return &description, nil
}

package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/location/domain"
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
		log:   p.Log.Named("location.service"),
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

func matchesTerm(l *domain.Location, term string) bool {
	if strings.Contains(l.Name, term) {
		return true
	}
	if l.Description != nil && strings.Contains(*l.Description, term) {
		return true
	}
	if n, err := strconv.ParseInt(term, 10, 64); err == nil && int64(l.ID) == n {
		return true
	}
	return false
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	locationID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, locationID)
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
	l := &domain.Location{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, s.db, l); err != nil {
		return nil, err
	}

	resp := toResponse(l)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	locationID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, locationID)
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
		existing, err := s.repo.FindByID(ctx, s.db, locationID)
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
	locationID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, locationID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, locationID)
}

func toResponse(l *domain.Location) domain.Response {
	return domain.Response{
		ID:          l.ID.String(),
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
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

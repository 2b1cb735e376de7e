package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/supplier/domain"
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
		log:   p.Log.Named("supplier.service"),
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

func matchesTerm(sup *domain.Supplier, term string) bool {
	if strings.Contains(sup.Name, term) ||
		strings.Contains(sup.InternalCode, term) ||
		strings.Contains(sup.Status, term) {
		return true
	}
	for _, field := range []*string{sup.Description, sup.Address, sup.Phone} {
		if field != nil && strings.Contains(*field, term) {
			return true
		}
	}
	if n, err := strconv.ParseInt(term, 10, 64); err == nil && int64(sup.ID) == n {
		return true
	}
	return false
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	supplierID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, supplierID)
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
	if name == "" || len(name) > 200 {
		return nil, domain.ErrInvalidName
	}
	code := strings.TrimSpace(req.InternalCode)
	if len(code) > 50 {
		return nil, domain.ErrInvalidCode
	}
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return nil, err
	}

	// Uniqueness is a convention enforced here, not a database constraint.
	if taken, err := s.repo.ExistsByName(ctx, s.db, name, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrNameTaken
	}
	if code != "" {
		if taken, err := s.repo.ExistsByInternalCode(ctx, s.db, code, 0); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrInternalCodeTaken
		}
	}

	now := time.Now().UTC()
	sup := &domain.Supplier{
		ID:           s.genID.Generate(),
		Name:         name,
		InternalCode: code,
		Description:  trimOptional(req.Description),
		Address:      trimOptional(req.Address),
		Phone:        phone,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, s.db, sup); err != nil {
		return nil, err
	}

	resp := toResponse(sup)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	supplierID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, supplierID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 200 {
			return nil, domain.ErrInvalidName
		}
		if taken, err := s.repo.ExistsByName(ctx, s.db, name, supplierID); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrNameTaken
		}
		item.Name = name
	}
	if req.InternalCode != nil {
		code := strings.TrimSpace(*req.InternalCode)
		if len(code) > 50 {
			return nil, domain.ErrInvalidCode
		}
		if code != "" {
			if taken, err := s.repo.ExistsByInternalCode(ctx, s.db, code, supplierID); err != nil {
				return nil, err
			} else if taken {
				return nil, domain.ErrInternalCodeTaken
			}
		}
		item.InternalCode = code
	}
	if req.Description != nil {
		item.Description = trimOptional(req.Description)
	}
	if req.Address != nil {
		item.Address = trimOptional(req.Address)
	}
	if req.Phone != nil {
		phone, err := normalizePhone(req.Phone)
		if err != nil {
			return nil, err
		}
		item.Phone = phone
	}
	if req.Status != nil {
		status, err := normalizeStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		item.Status = status
	}

	item.UpdatedAt = time.Now().UTC()
	affected, err := s.repo.Update(ctx, s.db, item)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		existing, err := s.repo.FindByID(ctx, s.db, supplierID)
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
	supplierID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, supplierID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	// Products referencing this supplier fall back to NULL (SET NULL rule).
	return s.repo.Delete(ctx, s.db, supplierID)
}

func toResponse(sup *domain.Supplier) domain.Response {
	return domain.Response{
		ID:           sup.ID.String(),
		Name:         sup.Name,
		InternalCode: sup.InternalCode,
		Description:  sup.Description,
		Address:      sup.Address,
		Phone:        sup.Phone,
		Status:       sup.Status,
		CreatedAt:    sup.CreatedAt,
		UpdatedAt:    sup.UpdatedAt,
	}
}

func trimOptional(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil
	}
	return &value
}

func normalizePhone(raw *string) (*string, error) {
	phone := trimOptional(raw)
	if phone == nil {
		return nil, nil
	}
	if len(*phone) > 20 {
		return nil, domain.ErrInvalidPhone
	}
	for _, r := range *phone {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return nil, domain.ErrInvalidPhone
		}
	}
	return phone, nil
}

func normalizeStatus(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "active":
		return domain.StatusActive, nil
	case "inactive":
		return domain.StatusInactive, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}

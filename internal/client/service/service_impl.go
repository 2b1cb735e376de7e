package service

import (
	"context"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/client/domain"
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
		log:   p.Log.Named("client.service"),
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

func matchesTerm(c *domain.Client, term string) bool {
	if strings.Contains(c.TaxID, term) ||
		strings.Contains(c.Name, term) ||
		strings.Contains(c.Status, term) {
		return true
	}
	for _, field := range []*string{c.Address, c.Phone, c.Email} {
		if field != nil && strings.Contains(*field, term) {
			return true
		}
	}
	if n, err := strconv.ParseInt(term, 10, 64); err == nil && int64(c.ID) == n {
		return true
	}
	return false
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, clientID)
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
	taxID := strings.TrimSpace(req.TaxID)
	if taxID == "" || len(taxID) > 20 {
		return nil, domain.ErrInvalidTaxID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 200 {
		return nil, domain.ErrInvalidName
	}
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if taken, err := s.repo.ExistsByTaxID(ctx, s.db, taxID, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrTaxIDTaken
	}

	now := time.Now().UTC()
	client := &domain.Client{
		ID:        s.genID.Generate(),
		TaxID:     taxID,
		Name:      name,
		Address:   trimOptional(req.Address),
		Phone:     phone,
		Email:     email,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, client); err != nil {
		return nil, err
	}

	resp := toResponse(client)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.TaxID != nil {
		taxID := strings.TrimSpace(*req.TaxID)
		if taxID == "" || len(taxID) > 20 {
			return nil, domain.ErrInvalidTaxID
		}
		if taken, err := s.repo.ExistsByTaxID(ctx, s.db, taxID, clientID); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrTaxIDTaken
		}
		item.TaxID = taxID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 200 {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
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
	if req.Email != nil {
		email, err := normalizeEmail(req.Email)
		if err != nil {
			return nil, err
		}
		item.Email = email
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
		existing, err := s.repo.FindByID(ctx, s.db, clientID)
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
	clientID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, clientID)
}

func toResponse(c *domain.Client) domain.Response {
	return domain.Response{
		ID:        c.ID.String(),
		TaxID:     c.TaxID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
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

func normalizeEmail(raw *string) (*string, error) {
	email := trimOptional(raw)
	if email == nil {
		return nil, nil
	}
	if len(*email) > 150 {
		return nil, domain.ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(*email); err != nil {
		return nil, domain.ErrInvalidEmail
	}
	return email, nil
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

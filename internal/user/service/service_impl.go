package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/auth/password"
	"github.com/smallbiznis/comercio/internal/authorization"
	"github.com/smallbiznis/comercio/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Authz authorization.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	authz authorization.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		repo:  p.Repo,
		authz: p.Authz,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.UserWithRoles, error) {
	users, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.UserWithRoles, 0, len(users))
	for i := range users {
		item, err := s.withRoles(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *item)
	}

	term := strings.ToLower(strings.TrimSpace(req.Search))
	if term == "" {
		return resp, nil
	}

	filtered := make([]domain.UserWithRoles, 0, len(resp))
	for _, item := range resp {
		if matchesTerm(item, term) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func matchesTerm(item domain.UserWithRoles, term string) bool {
	if strings.Contains(strings.ToLower(item.Email), term) ||
		strings.Contains(strings.ToLower(item.FullName), term) ||
		strings.Contains(strings.ToLower(item.Position), term) {
		return true
	}
	for _, role := range item.Roles {
		if strings.Contains(strings.ToLower(role), term) {
			return true
		}
	}
	activeLabel := "no"
	if item.Active {
		activeLabel = "yes"
	}
	return strings.Contains(activeLabel, term)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.UserWithRoles, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return s.withRoles(ctx, user)
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.UserWithRoles, error) {
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidEmail
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" || len(fullName) > 100 {
		return nil, domain.ErrInvalidFullName
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrInvalidPassword
	}
	role, err := normalizeRole(req.Role)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByEmail(ctx, s.db, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		FullName:     fullName,
		Position:     role,
		PasswordHash: &hashed,
		Active:       req.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, s.db, user); err != nil {
		return nil, err
	}
	if err := s.authz.AssignRole(ctx, user.ID.String(), role); err != nil {
		return nil, err
	}
	return s.withRoles(ctx, user)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.UserWithRoles, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName == "" || len(fullName) > 100 {
			return nil, domain.ErrInvalidFullName
		}
		user.FullName = fullName
	}
	if req.Position != nil {
		user.Position = strings.TrimSpace(*req.Position)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Role != nil {
		role, err := normalizeRole(*req.Role)
		if err != nil {
			return nil, err
		}
		if err := s.authz.ReplaceRole(ctx, user.ID.String(), role); err != nil {
			return nil, err
		}
		// The position field redundantly records the assigned role.
		user.Position = role
	}

	user.UpdatedAt = time.Now().UTC()
	affected, err := s.repo.Update(ctx, s.db, user)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// The row changed or vanished since we read it. Re-check existence to
		// distinguish a delete race from a conflicting update.
		existing, err := s.repo.FindByID(ctx, s.db, userID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrConflict
	}
	return s.withRoles(ctx, user)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, userID); err != nil {
		return err
	}
	return s.authz.RemoveUser(ctx, userID.String())
}

func (s *Service) withRoles(ctx context.Context, user *domain.User) (*domain.UserWithRoles, error) {
	roles, err := s.authz.RolesForUser(ctx, user.ID.String())
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []string{}
	}
	return &domain.UserWithRoles{
		ID:        user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		Position:  user.Position,
		Active:    user.Active,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func normalizeRole(raw string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(raw))
	switch role {
	case authorization.RoleAdministrator, authorization.RoleEmployee:
		return role, nil
	case "":
		return authorization.RoleEmployee, nil
	default:
		return "", domain.ErrInvalidRole
	}
}

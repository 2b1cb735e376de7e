package authorization

import (
	"context"
	_ "embed"
	"errors"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

// Role names gate every route. Registration always assigns RoleEmployee;
// promotion to RoleAdministrator is a manual administrative action.
const (
	RoleAdministrator = "administrator"
	RoleEmployee      = "employee"
)

const (
	ObjectCategory  = "category"
	ObjectSupplier  = "supplier"
	ObjectLocation  = "location"
	ObjectClient    = "client"
	ObjectProduct   = "product"
	ObjectUser      = "user"
	ObjectSale      = "sale"
	ObjectDashboard = "dashboard"
	ObjectExport    = "export"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

var (
	ErrInvalidActor = errors.New("invalid_actor")
	ErrForbidden    = errors.New("forbidden")
)

type Service interface {
	Authorize(ctx context.Context, actor string, object string, action string) error
	AssignRole(ctx context.Context, userID string, role string) error
	ReplaceRole(ctx context.Context, userID string, role string) error
	RolesForUser(ctx context.Context, userID string) ([]string, error)
	RemoveUser(ctx context.Context, userID string) error
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{RoleAdministrator, "*", "*"},

		{RoleEmployee, ObjectCategory, ActionView},
		{RoleEmployee, ObjectSupplier, ActionView},
		{RoleEmployee, ObjectLocation, ActionView},
		{RoleEmployee, ObjectProduct, ActionView},
		{RoleEmployee, ObjectClient, ActionView},
		{RoleEmployee, ObjectClient, ActionCreate},
		{RoleEmployee, ObjectClient, ActionUpdate},
		{RoleEmployee, ObjectSale, ActionView},
		{RoleEmployee, ObjectSale, ActionCreate},
		{RoleEmployee, ObjectSale, ActionUpdate},
		{RoleEmployee, ObjectSale, ActionDelete},
		{RoleEmployee, ObjectDashboard, ActionView},
		{RoleEmployee, ObjectExport, ActionView},
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}
	return nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor string, object string, action string) error {
	_ = ctx
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrInvalidActor
	}

	allowed, err := s.enforcer.Enforce(actor, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("access denied",
			zap.String("actor", actor),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) AssignRole(ctx context.Context, userID string, role string) error {
	_ = ctx
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidActor
	}
	_, err := s.enforcer.AddGroupingPolicy(userID, role)
	return err
}

// ReplaceRole removes every role the user currently holds and assigns the
// given one. The user listing and edit flows treat role as single-valued.
func (s *ServiceImpl) ReplaceRole(ctx context.Context, userID string, role string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidActor
	}
	if _, err := s.enforcer.DeleteRolesForUser(userID); err != nil {
		return err
	}
	return s.AssignRole(ctx, userID, role)
}

func (s *ServiceImpl) RolesForUser(ctx context.Context, userID string) ([]string, error) {
	_ = ctx
	return s.enforcer.GetRolesForUser(strings.TrimSpace(userID))
}

func (s *ServiceImpl) RemoveUser(ctx context.Context, userID string) error {
	_ = ctx
	_, err := s.enforcer.DeleteUser(strings.TrimSpace(userID))
	return err
}

// Module wires the casbin enforcer and the authorization service.
var Module = fx.Module("authorization",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)

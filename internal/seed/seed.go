// Package seed guarantees a usable first login. Registration creates
// inactive accounts only, so without a seeded administrator nobody
// could ever activate anyone.
package seed

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/auth/password"
	"github.com/smallbiznis/comercio/internal/authorization"
	"github.com/smallbiznis/comercio/internal/config"
	userdomain "github.com/smallbiznis/comercio/internal/user/domain"
	"gorm.io/gorm"
)

// EnsureBootstrapAdmin creates the configured administrator account if
// no user exists yet. An already populated database is left untouched.
func EnsureBootstrapAdmin(db *gorm.DB, genID *snowflake.Node, authz authorization.Service, cfg config.Config) error {
	var count int64
	if err := db.Model(&userdomain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.BootstrapAdminEmail))
	if email == "" || cfg.BootstrapAdminPassword == "" {
		return nil
	}

	hash, err := password.Hash(cfg.BootstrapAdminPassword)
	if err != nil {
		return err
	}

	admin := &userdomain.User{
		ID:           genID.Generate(),
		Email:        email,
		FullName:     "Administrator",
		Position:     authorization.RoleAdministrator,
		PasswordHash: &hash,
		Active:       true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	return authz.AssignRole(context.Background(), admin.ID.String(), authorization.RoleAdministrator)
}

package migration

import (
	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/comercio/internal/auth/domain"
	"github.com/smallbiznis/comercio/internal/authorization"
	categorydomain "github.com/smallbiznis/comercio/internal/category/domain"
	clientdomain "github.com/smallbiznis/comercio/internal/client/domain"
	"github.com/smallbiznis/comercio/internal/config"
	locationdomain "github.com/smallbiznis/comercio/internal/location/domain"
	productdomain "github.com/smallbiznis/comercio/internal/product/domain"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
	"github.com/smallbiznis/comercio/internal/seed"
	supplierdomain "github.com/smallbiznis/comercio/internal/supplier/domain"
	userdomain "github.com/smallbiznis/comercio/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *snowflake.Node, authz authorization.Service) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql installs are dev setups, AutoMigrate is enough.
			if err := conn.AutoMigrate(
				&categorydomain.Category{},
				&supplierdomain.Supplier{},
				&locationdomain.Location{},
				&clientdomain.Client{},
				&productdomain.Product{},
				&userdomain.User{},
				&authdomain.Session{},
				&saledomain.Sale{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureBootstrapAdmin(conn, genID, authz, cfg)
	}),
)

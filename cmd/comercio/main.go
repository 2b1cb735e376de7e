package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/config"
	"github.com/smallbiznis/comercio/internal/logger"
	"github.com/smallbiznis/comercio/internal/migration"
	"github.com/smallbiznis/comercio/internal/server"
	"github.com/smallbiznis/comercio/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

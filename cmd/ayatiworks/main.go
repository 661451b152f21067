package main

import (
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/config"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/migration"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/observability"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/server"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
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

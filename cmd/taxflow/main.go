package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/taxflow/internal/config"
	"github.com/smallbiznis/taxflow/internal/migration"
	"github.com/smallbiznis/taxflow/internal/server"
	"github.com/smallbiznis/taxflow/pkg/db"
	"github.com/smallbiznis/taxflow/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
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

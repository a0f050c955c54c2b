package main

import (
	"github.com/aurafarming/mailportal/internal/clock"
	"github.com/aurafarming/mailportal/internal/migration"
	"github.com/aurafarming/mailportal/internal/observability"
	"github.com/aurafarming/mailportal/internal/server"
	"github.com/aurafarming/mailportal/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		clock.Module,
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

package main

import (
	"log/slog"
	"net/http"

	"github.com/reoring/restcodec/config"
	"github.com/reoring/restcodec/example/petstore/api"
	"github.com/reoring/restcodec/httpadapter"
	"github.com/reoring/restcodec/mapper"
)

func newHandler(cfg config.Config, logger *slog.Logger) http.Handler {
	m := mapper.New(
		mapper.WithDriver(cfg.JSON.JSONDriver()),
		mapper.WithParseOpt(cfg.JSON.ParseOpt()),
		mapper.WithLogger(logger),
	)
	conv := httpadapter.NewMessageConverter(m, cfg.Server.MediaTypes...)
	r := httpadapter.NewRouter(conv, cfg.Server.HandlerOptions(logger))
	api.Routes(r, api.NewStore())
	return r
}

package handler

import (
	"chathub/internal/app/hub"
	"chathub/internal/configs"
)

// AppDeps bundles the dependencies the handlers need.
type AppDeps struct {
	Hub    *hub.Hub
	Config *configs.AppConfig
}

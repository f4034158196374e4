package controllers_fx

import (
	"go.uber.org/fx"
	"menuadvisor/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewSessionController))

package reconciler

import "go.uber.org/fx"

// Module exposes the reconciler via Fx.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(NewService, fx.As(new(Reconciler))),
	),
)

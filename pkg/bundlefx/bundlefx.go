// bundlefx/bundlefx.go
package bundlefx

import (
	"go.uber.org/fx"

	"github.com/reskit/reskit/pkg/middleware/guard"
	"github.com/reskit/reskit/pkg/middleware/logger"
	"github.com/reskit/reskit/pkg/middleware/metrics"
)

// Module provided to fx
var Module = fx.Options(
	guard.Module,
	logger.Module,
	metrics.Module,
)

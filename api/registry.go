package api

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stoneerp.GO/core/registry"
)

// ModuleFunc mounts a module on the authenticated /api group.
type ModuleFunc func(g *echo.Group, db *gorm.DB)

// RouteFunc mounts public routes, such as health checks, on the root server.
type RouteFunc func(e *echo.Echo, db *gorm.DB)

// RegisterModule adds an /api module. Call it from init; registering after
// ApplyModules panics.
func RegisterModule(fn ModuleFunc) {
	if err := registry.Append(registry.GlobalRegistry, registry.KeyRegistryAPI, fn); err != nil {
		panic("api: RegisterModule after ApplyModules: " + err.Error())
	}
}

// ApplyModules mounts every registered module in registration order and
// closes the module registry.
func ApplyModules(g *echo.Group, db *gorm.DB) {
	registry.GlobalRegistry.Lock(registry.KeyRegistryAPI)
	for _, fn := range registry.List[ModuleFunc](registry.GlobalRegistry, registry.KeyRegistryAPI) {
		fn(g, db)
	}
}

// RegisterRoute adds a root-level route set. Call it from init.
func RegisterRoute(fn RouteFunc) {
	if err := registry.Append(registry.GlobalRegistry, registry.KeyRegistryRoutes, fn); err != nil {
		panic("api: RegisterRoute after ApplyRoutes: " + err.Error())
	}
}

// ApplyRoutes mounts every registered root route set and closes the route
// registry.
func ApplyRoutes(e *echo.Echo, db *gorm.DB) {
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
	for _, fn := range registry.List[RouteFunc](registry.GlobalRegistry, registry.KeyRegistryRoutes) {
		fn(e, db)
	}
}

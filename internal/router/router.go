package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/hazmanhs/dormitory-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/hazmanhs/dormitory-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (register, login, refresh).  Each of
	// these handlers is responsible for generating or exchanging tokens.
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)
	// Register a POST endpoint to refresh access tokens at /v1/auth/refresh. This rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Register a POST endpoint to issue a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication.  The handler accepts either
	// a bearer token or a JSON body carrying a `refresh_token` and will
	// invalidate the matching session(s).
	g.POST("/logout", a.Logout)

	// Create another group for routes that require a valid access token.  All
	// handlers registered on this group will execute the JWTAuth middleware
	// before being invoked.  Protected endpoints live under /v1.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Any authenticated user, whether ADMIN or STAFF, may read their own
	// profile.  The middleware rejects requests with missing or unknown roles.
	auth.Use(middleware.RequireRole("ADMIN", "STAFF"))
	// Register a GET endpoint at /v1/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)
}

// RegisterDormitory registers the unauthenticated browse endpoints for the
// dormitory.  The catalog is static, so these routes are good candidates for
// the Redis response cache; pass the cache middleware built in main (or none).
func RegisterDormitory(e *echo.Echo, d *handler.DormitoryHandler, mws ...echo.MiddlewareFunc) {
	// Full building/floor/room catalog.
	e.GET("/v1/dormitory/catalog", d.Catalog, mws...)
	// Per-room occupancy derived from active assignments.
	e.GET("/v1/dormitory/occupancy", d.Occupancy, mws...)
	// Dormitory-wide occupancy statistics.
	e.GET("/v1/dormitory/stats", d.Stats, mws...)
	// Single building with its occupancy statistics.
	e.GET("/v1/dormitory/buildings/:name", d.Building, mws...)
}

// RegisterStaff registers the staff-facing management endpoints under /v1.
// All routes require a valid JWT and either the ADMIN or STAFF role.
func RegisterStaff(e *echo.Echo, t *handler.TrainerHandler, a *handler.AssignmentHandler, s *handler.ScheduleHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)

	// ---- Trainers ----
	g.POST("/trainers", t.Create)
	g.GET("/trainers", t.List)
	g.GET("/trainers/:id", t.Get)
	g.PUT("/trainers/:id", t.Update)
	g.PATCH("/trainers/:id", t.Update) // allow partial/semantic updates via PATCH as well
	g.DELETE("/trainers/:id", t.Delete)

	// ---- Dormitory assignments ----
	g.POST("/dormitory/assignments", a.CheckIn)
	g.GET("/dormitory/assignments", a.List)
	g.DELETE("/dormitory/assignments/:id", a.CheckOut)

	// ---- Schedule ----
	g.POST("/schedule", s.Create)
	g.GET("/schedule", s.List)
	g.GET("/schedule/:id", s.Get)
	g.PUT("/schedule/:id", s.Update)
	g.PATCH("/schedule/:id", s.Update)
	g.DELETE("/schedule/:id", s.Delete)
}

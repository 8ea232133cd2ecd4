package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"techcorp/internal/auth"
	"techcorp/internal/handler"
)

// Register wires routes and middleware. The guard resolves the session
// cookie into an identity for every request; role checks sit on the groups
// that need them, so individual handlers never repeat them.
func Register(
	e *echo.Echo,
	guard *auth.Guard,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	messageHandler *handler.MessageHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(guard.WithIdentity())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", healthHandler.Health)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"title":    "TechCorp Solutions - Leading Technology Company",
			"identity": auth.CurrentIdentity(c),
		})
	})

	// Authentication
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	// Public catalog browse
	database := e.Group("/database")
	database.GET("", catalogHandler.BrowseDatabase)
	database.GET("/products", catalogHandler.BrowseProducts)
	database.GET("/categories", catalogHandler.BrowseCategories)
	database.GET("/projects", catalogHandler.BrowseProjects)

	// Public contact form
	e.GET("/contact", messageHandler.ContactPage)
	e.POST("/contact", messageHandler.SubmitContact)

	// Message inbox (registered users and admins)
	messages := e.Group("/messages", guard.RequirePage(auth.HasRole(auth.RoleRegistered)))
	messages.GET("", messageHandler.ListMessages)
	messages.GET("/:id", messageHandler.GetMessage)

	// Status changes are API-facing and admin only
	e.POST("/messages/:id/status", messageHandler.UpdateMessageStatus,
		guard.RequireAPI(auth.HasRole(auth.RoleAdmin)))

	// Admin product management. Pages redirect to login when denied;
	// mutations answer 403 like the other API-facing routes.
	adminPage := guard.RequirePage(auth.HasRole(auth.RoleAdmin))
	adminAPI := guard.RequireAPI(auth.HasRole(auth.RoleAdmin))
	crud := e.Group("/crud")
	crud.GET("", catalogHandler.AdminListProducts, adminPage)
	crud.GET("/add", catalogHandler.AdminNewProductForm, adminPage)
	crud.GET("/edit/:id", catalogHandler.AdminEditProductForm, adminPage)
	crud.GET("/view/:id", catalogHandler.AdminViewProduct, adminPage)
	crud.POST("/add", catalogHandler.AdminCreateProduct, adminAPI)
	crud.POST("/edit/:id", catalogHandler.AdminUpdateProduct, adminAPI)
	crud.POST("/delete/:id", catalogHandler.AdminDeleteProduct, adminAPI)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

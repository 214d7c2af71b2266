package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"healthtrack/internal/auth"
	"healthtrack/internal/config"
	"healthtrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.BlacklistStore,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	specializationHandler *handler.SpecializationHandler,
	medicationHandler *handler.MedicationHandler,
	medicalDataHandler *handler.MedicalDataHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	appointmentHandler *handler.AppointmentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/specializations", specializationHandler.List)
	api.GET("/specializations/:id", specializationHandler.Get)

	// Secured routes (require a valid, non-revoked JWT)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}), blacklistMiddleware(tokenStore))

	// Profile routes
	secured.GET("/users/profile", userHandler.GetProfile)
	secured.PUT("/users/profile", userHandler.UpdateProfile)
	secured.GET("/users/patientCount", userHandler.PatientCount)

	// Directory routes
	secured.GET("/doctors", userHandler.ListDoctors)
	secured.GET("/patients", userHandler.ListPatients)

	// Specialization management
	secured.POST("/specializations", specializationHandler.Create)
	secured.DELETE("/specializations/:id", specializationHandler.Delete)

	// Medication routes
	secured.POST("/medications/user/:userId", medicationHandler.Add)
	secured.GET("/medications/user/:userId", medicationHandler.ListByUser)
	secured.GET("/medications/:id", medicationHandler.Get)
	secured.PUT("/medications/:id", medicationHandler.Update)
	secured.DELETE("/medications/:id", medicationHandler.Delete)
	secured.POST("/medications/:id/intake", medicationHandler.RecordIntake)
	secured.GET("/medications/:id/intake", medicationHandler.ListIntakes)

	// Medical data routes
	secured.POST("/medical-data/user/:userId", medicalDataHandler.Add)
	secured.GET("/medical-data/user/:userId", medicalDataHandler.ListByUser)
	secured.GET("/medical-data", medicalDataHandler.ListAll)

	// Medical record routes
	secured.GET("/medical-records/user/:userId", medicalRecordHandler.GetByUser)
	secured.GET("/medical-records/:id", medicalRecordHandler.Get)
	secured.PUT("/medical-records/user/:userId", medicalRecordHandler.Update)

	// Appointment routes
	secured.POST("/appointments/user/:userId", appointmentHandler.Create)
	secured.GET("/appointments/user/:userId", appointmentHandler.ListByUser)
	secured.GET("/appointments/doctor/:doctorId", appointmentHandler.ListByDoctor)
	secured.PUT("/appointments/:appointmentId/doctor/:doctorId/status", appointmentHandler.UpdateStatus)
	secured.DELETE("/appointments/:id", appointmentHandler.Delete)
}

// blacklistMiddleware rejects tokens revoked by logout.
func blacklistMiddleware(store auth.BlacklistStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.ID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			revoked, err := store.IsBlacklisted(c.Request().Context(), claims.ID)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "token verification unavailable")
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Astemirdum/venue-reservation/pkg/auth"
	md "github.com/Astemirdum/venue-reservation/pkg/middleware"
	"github.com/Astemirdum/venue-reservation/pkg/upload"
	"github.com/Astemirdum/venue-reservation/pkg/validate"
	_ "github.com/Astemirdum/venue-reservation/reservation/docs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
)

type Uploader interface {
	Save(fh *multipart.FileHeader) (upload.File, error)
	Dir() string
	URLPrefix() string
}

type Handler struct {
	svc        ReservationService
	tokens     md.TokenParser
	uploads    Uploader
	loginStore middleware.RateLimiterStore
	log        *zap.Logger
}

func New(svc ReservationService, tokens md.TokenParser, uploads Uploader, loginStore middleware.RateLimiterStore, log *zap.Logger) *Handler {
	return &Handler{
		svc:        svc,
		tokens:     tokens,
		uploads:    uploads,
		loginStore: loginStore,
		log:        log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Validator = validate.NewCustomValidator()

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)
	if h.uploads != nil {
		e.Static(h.uploads.URLPrefix(), h.uploads.Dir())
	}

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	jwt := md.JwtAuthentication(h.tokens)
	admin := md.RequireRole(auth.RoleAdmin)
	staff := md.RequireRole(auth.RoleAdmin, auth.RoleEmployee)

	api.POST("/auth/login", h.Login, md.NewLoginLimiter(h.loginStore))
	api.POST("/auth/register", h.Register)
	api.GET("/auth/profile", h.GetProfile, jwt)
	api.PUT("/auth/profile", h.UpdateProfile, jwt)

	users := api.Group("/usuarios", jwt)
	users.GET("/clientes", h.ListClients, staff)
	users.GET("", h.ListUsers, admin)
	users.GET("/:id", h.GetUser, admin)
	users.POST("", h.CreateUser, admin)
	users.PUT("/:id", h.UpdateUser, admin)
	users.DELETE("/:id", h.DeleteUser, admin)

	api.GET("/salones", h.ListVenues)
	api.GET("/salones/:id", h.GetVenue)
	api.POST("/salones", h.CreateVenue, jwt, admin)
	api.PUT("/salones/:id", h.UpdateVenue, jwt, admin)
	api.DELETE("/salones/:id", h.DeleteVenue, jwt, admin)

	api.GET("/servicios", h.ListAddons)
	api.GET("/servicios/:id", h.GetAddon)
	api.POST("/servicios", h.CreateAddon, jwt, staff)
	api.PUT("/servicios/:id", h.UpdateAddon, jwt, staff)
	api.DELETE("/servicios/:id", h.DeleteAddon, jwt, staff)

	api.GET("/turnos", h.ListSlots)
	api.GET("/turnos/:id", h.GetSlot)
	api.POST("/turnos", h.CreateSlot, jwt, staff)
	api.PUT("/turnos/:id", h.UpdateSlot, jwt, staff)
	api.DELETE("/turnos/:id", h.DeleteSlot, jwt, staff)

	rsv := api.Group("/reservas", jwt)
	rsv.GET("", h.ListReservations)
	rsv.GET("/disponibilidad", h.Availability)
	rsv.POST("/cotizacion", h.Quote)
	rsv.GET("/:id", h.GetReservation)
	rsv.POST("", h.CreateReservation)
	rsv.PUT("/:id", h.UpdateReservation, admin)
	rsv.DELETE("/:id", h.DeleteReservation, admin)

	api.GET("/estadisticas", h.Stats, jwt, admin)
	api.GET("/reportes/pdf", h.ReportPDF, jwt, admin)
	api.GET("/reportes/csv", h.ReportCSV, jwt, admin)

	api.POST("/files/upload", h.Upload, jwt)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps service errors onto status codes. Unknown errors are logged
// and answered without detail.
func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrSelfDelete):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	h.log.Error("internal", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func paramID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func bindValid(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func caller(c echo.Context) (auth.Identity, error) {
	id, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return auth.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

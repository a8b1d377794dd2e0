package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/venue-reservation/pkg/auth"
	md "github.com/Astemirdum/venue-reservation/pkg/middleware"
	"github.com/Astemirdum/venue-reservation/pkg/upload"
	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/handler"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"

	service_mocks "github.com/Astemirdum/venue-reservation/reservation/internal/handler/mocks"
)

const secret = "test-secret"

var (
	admin   = auth.Identity{UserID: 1, UserName: "admin@salones.com", Role: auth.RoleAdmin}
	worker  = auth.Identity{UserID: 2, UserName: "empleado@salones.com", Role: auth.RoleEmployee}
	client1 = auth.Identity{UserID: 7, UserName: "c1@mail.com", Role: auth.RoleClient}
	client2 = auth.Identity{UserID: 8, UserName: "c2@mail.com", Role: auth.RoleClient}
)

type input struct {
	method string
	path   string
	body   string
	as     *auth.Identity
}

type response struct {
	expectedCode int
	expectedBody string
}

type mockBehavior func(r *service_mocks.MockReservationService)

type testCase struct {
	name         string
	mockBehavior mockBehavior
	input        input
	response     response
}

func bearer(t *testing.T, id auth.Identity) string {
	t.Helper()
	token, _, err := auth.NewTokenManager(secret, time.Hour).Issue(id)
	require.NoError(t, err)
	return "Bearer " + token
}

func newRouter(t *testing.T, svc handler.ReservationService, uploads handler.Uploader) *echo.Echo {
	t.Helper()
	log := zap.NewExample().Named("test")
	h := handler.New(svc, auth.NewTokenManager(secret, time.Hour), uploads,
		md.NewMemoryLimiterStore(100, time.Minute), log)
	return h.NewRouter()
}

func run(t *testing.T, tests []testCase) {
	t.Helper()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReservationService(c)
			e := newRouter(t, svc, nil)

			r := httptest.NewRequest(tt.input.method, tt.input.path, strings.NewReader(tt.input.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.input.as != nil {
				r.Header.Set(echo.HeaderAuthorization, bearer(t, *tt.input.as))
			}
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Reservations(t *testing.T) {
	t.Parallel()
	run(t, []testCase{
		{
			name: "create ok",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					CreateReservation(gomock.Any(), model.CreateReservationRequest{
						Date:     model.NewDate(2025, time.March, 14),
						VenueID:  1,
						SlotID:   2,
						Services: []model.ServiceSelection{{ServiceID: 3}},
						UserID:   client1.UserID,
					}).
					Return(model.CreateReservationResponse{ID: 10, TotalPrice: 123000}, nil)
			},
			input: input{
				method: http.MethodPost,
				path:   "/api/v1/reservas",
				body:   `{"fecha_reserva":"2025-03-14","salon_id":1,"turno_id":2,"servicios":[{"servicio_id":3}]}`,
				as:     &client1,
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"reserva_id":10,"importe_total":123000}`,
			},
		},
		{
			name: "create slot taken",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					CreateReservation(gomock.Any(), gomock.Any()).
					Return(model.CreateReservationResponse{}, errs.ErrSlotTaken)
			},
			input: input{
				method: http.MethodPost,
				path:   "/api/v1/reservas",
				body:   `{"fecha_reserva":"2025-03-14","salon_id":1,"turno_id":2}`,
				as:     &client1,
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"el salón ya está reservado para esa fecha y turno: conflict"}`,
			},
		},
		{
			name:         "create without token",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			input: input{
				method: http.MethodPost,
				path:   "/api/v1/reservas",
				body:   `{"fecha_reserva":"2025-03-14","salon_id":1,"turno_id":2}`,
			},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"No Authorization Header"}`,
			},
		},
		{
			name:         "create bad date",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			input: input{
				method: http.MethodPost,
				path:   "/api/v1/reservas",
				body:   `{"fecha_reserva":"14/03/2025","salon_id":1,"turno_id":2}`,
				as:     &client1,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"fecha invalida \"14/03/2025\", se espera YYYY-MM-DD"}`,
			},
		},
		{
			name: "other client reservation is not found",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					GetReservation(gomock.Any(), 1, client2).
					Return(model.ReservationDetail{}, errs.ErrReservationNotFound)
			},
			input: input{method: http.MethodGet, path: "/api/v1/reservas/1", as: &client2},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"reserva not found"}`,
			},
		},
		{
			name:         "client cannot update",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			input: input{
				method: http.MethodPut,
				path:   "/api/v1/reservas/1",
				body:   `{"tematica":"Piratas"}`,
				as:     &client1,
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"forbidden"}`,
			},
		},
		{
			name: "admin updates theme",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				theme := "Piratas"
				r.EXPECT().
					UpdateReservation(gomock.Any(), 1, model.UpdateReservationRequest{Theme: &theme}).
					Return(nil)
			},
			input: input{
				method: http.MethodPut,
				path:   "/api/v1/reservas/1",
				body:   `{"tematica":"Piratas"}`,
				as:     &admin,
			},
			response: response{expectedCode: http.StatusNoContent},
		},
		{
			name: "delete missing",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().DeleteReservation(gomock.Any(), 5).Return(false, nil)
			},
			input: input{method: http.MethodDelete, path: "/api/v1/reservas/5", as: &admin},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"reserva not found"}`,
			},
		},
		{
			name: "delete ok",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().DeleteReservation(gomock.Any(), 5).Return(true, nil)
			},
			input:    input{method: http.MethodDelete, path: "/api/v1/reservas/5", as: &admin},
			response: response{expectedCode: http.StatusNoContent},
		},
		{
			name:         "bad id",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			input:        input{method: http.MethodGet, path: "/api/v1/reservas/abc", as: &admin},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid id"}`,
			},
		},
		{
			name: "availability",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					IsAvailable(gomock.Any(), model.NewDate(2025, time.March, 14), 1, 2, 0).
					Return(false, nil)
			},
			input: input{
				method: http.MethodGet,
				path:   "/api/v1/reservas/disponibilidad?fecha_reserva=2025-03-14&salon_id=1&turno_id=2",
				as:     &client1,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"fecha_reserva":"2025-03-14","salon_id":1,"turno_id":2,"disponible":false}`,
			},
		},
		{
			name: "quote",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					ComputeTotal(gomock.Any(), 1, []model.ServiceSelection{{ServiceID: 3}}).
					Return(model.Quote{
						VenuePrice: 100000,
						TotalPrice: 115000,
						Lines:      []model.QuoteLine{{ServiceID: 3, Description: "Catering", Price: 15000}},
					}, nil)
			},
			input: input{
				method: http.MethodPost,
				path:   "/api/v1/reservas/cotizacion",
				body:   `{"salon_id":1,"servicios":[{"servicio_id":3}]}`,
				as:     &client1,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"importe_salon":100000,"importe_total":115000,"servicios":[{"servicio_id":3,"descripcion":"Catering","importe":15000}]}`,
			},
		},
		{
			name: "internal error is hidden",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					ListReservations(gomock.Any(), admin).
					Return(nil, errors.New("db internal"))
			},
			input: input{method: http.MethodGet, path: "/api/v1/reservas", as: &admin},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"internal server error"}`,
			},
		},
	})
}

func TestHandler_Users(t *testing.T) {
	t.Parallel()
	run(t, []testCase{
		{
			name: "admin self delete",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().DeleteUser(gomock.Any(), admin.UserID, admin).Return(errs.ErrSelfDelete)
			},
			input: input{method: http.MethodDelete, path: "/api/v1/usuarios/1", as: &admin},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"no puedes eliminar tu propio usuario"}`,
			},
		},
		{
			name:         "employee cannot list users",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			input:        input{method: http.MethodGet, path: "/api/v1/usuarios", as: &worker},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"forbidden"}`,
			},
		},
		{
			name: "employee lists clients",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().ListClients(gomock.Any()).Return([]model.User{}, nil)
			},
			input: input{method: http.MethodGet, path: "/api/v1/usuarios/clientes", as: &worker},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
		{
			name: "login bad credentials",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					Login(gomock.Any(), model.LoginRequest{UserName: "c1@mail.com", Password: "wrong-pass"}).
					Return(model.LoginResponse{}, errs.ErrInvalidCredentials)
			},
			input: input{
				method: http.MethodPost,
				path:   "/api/v1/auth/login",
				body:   `{"nombre_usuario":"c1@mail.com","contrasenia":"wrong-pass"}`,
			},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"invalid credentials: unauthorized"}`,
			},
		},
		{
			name: "register login taken",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().Register(gomock.Any(), gomock.Any()).Return(model.User{}, errs.ErrLoginTaken)
			},
			input: input{
				method: http.MethodPost,
				path:   "/api/v1/auth/register",
				body:   `{"nombre":"Ana","apellido":"Perez","nombre_usuario":"c1@mail.com","contrasenia":"secreto"}`,
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"el nombre de usuario ya está en uso: conflict"}`,
			},
		},
	})
}

func TestHandler_Catalog(t *testing.T) {
	t.Parallel()
	run(t, []testCase{
		{
			name: "public venue list",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().ListVenues(gomock.Any()).Return([]model.Venue{}, nil)
			},
			input:    input{method: http.MethodGet, path: "/api/v1/salones"},
			response: response{expectedCode: http.StatusOK, expectedBody: `[]`},
		},
		{
			name:         "employee cannot create venue",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			input: input{
				method: http.MethodPost,
				path:   "/api/v1/salones",
				body:   `{"titulo":"Salon Norte","direccion":"Av. Siempre Viva 742","capacidad":50,"importe":100000}`,
				as:     &worker,
			},
			response: response{expectedCode: http.StatusForbidden, expectedBody: `{"message":"forbidden"}`},
		},
		{
			name: "employee deletes service",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().DeleteAddon(gomock.Any(), 4).Return(nil)
			},
			input:    input{method: http.MethodDelete, path: "/api/v1/servicios/4", as: &worker},
			response: response{expectedCode: http.StatusNoContent},
		},
		{
			name: "missing slot",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().GetSlot(gomock.Any(), 9).Return(model.Slot{}, errs.ErrSlotNotFound)
			},
			input: input{method: http.MethodGet, path: "/api/v1/turnos/9"},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"turno not found"}`,
			},
		},
	})
}

func TestHandler_Reports(t *testing.T) {
	t.Parallel()
	run(t, []testCase{
		{
			name:         "client cannot read stats",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			input:        input{method: http.MethodGet, path: "/api/v1/estadisticas", as: &client1},
			response:     response{expectedCode: http.StatusForbidden, expectedBody: `{"message":"forbidden"}`},
		},
		{
			name: "no reservations",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().ReportPDF(gomock.Any()).Return(nil, errs.ErrNoReservations)
			},
			input: input{method: http.MethodGet, path: "/api/v1/reportes/pdf", as: &admin},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"no hay reservas para el reporte: not found"}`,
			},
		},
	})

	t.Run("csv attachment", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		svc := service_mocks.NewMockReservationService(c)
		svc.EXPECT().ReportCSV(gomock.Any()).Return([]byte("ID,Fecha\n"), nil)
		e := newRouter(t, svc, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/reportes/csv", http.NoBody)
		r.Header.Set(echo.HeaderAuthorization, bearer(t, admin))
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "text/csv; charset=utf-8", w.Header().Get(echo.HeaderContentType))
		require.Contains(t, w.Header().Get(echo.HeaderContentDisposition), "attachment; filename=\"reporte-reservas-")
		require.Equal(t, "ID,Fecha\n", w.Body.String())
	})
}

func TestHandler_Upload(t *testing.T) {
	t.Parallel()
	store, err := upload.NewStore(upload.Config{Dir: t.TempDir(), MaxSize: 1 << 10, URLPrefix: "/uploads"})
	require.NoError(t, err)

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	tests := []struct {
		name         string
		content      []byte
		expectedCode int
	}{
		{name: "png", content: png, expectedCode: http.StatusCreated},
		{name: "text", content: []byte("hola mundo"), expectedCode: http.StatusBadRequest},
		{name: "too large", content: append(png, make([]byte, 2<<10)...), expectedCode: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			e := newRouter(t, service_mocks.NewMockReservationService(c), store)

			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			part, err := mw.CreateFormFile("file", "foto.bin")
			require.NoError(t, err)
			_, err = part.Write(tt.content)
			require.NoError(t, err)
			require.NoError(t, mw.Close())

			r := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", &buf)
			r.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
			r.Header.Set(echo.HeaderAuthorization, bearer(t, client1))
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				require.Contains(t, w.Body.String(), `"path":"/uploads/`)
			}
		})
	}
}

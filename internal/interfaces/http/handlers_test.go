package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/Alianzas-api/internal/application/analytics"
	"github.com/jhoicas/Alianzas-api/internal/application/auth"
	"github.com/jhoicas/Alianzas-api/internal/application/collaboration"
	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/application/report"
	"github.com/jhoicas/Alianzas-api/internal/application/usecase"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/infrastructure/export"
	"github.com/jhoicas/Alianzas-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Alianzas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Alianzas-api/pkg/jwt"
)

const selfServiceCode = "CREDITS-2025"

// newAPI arma la API completa sobre el store en memoria con datos base:
// startups s-a y s-b, partner self-service p-self y partner con aprobación p-appr.
func newAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()
	code := selfServiceCode

	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-1", Name: "Cloud", CreatedAt: now}))
	require.NoError(t, store.Startups().Create(ctx, &entity.Startup{ID: "s-a", Name: "Alpha", CreatedAt: now}))
	require.NoError(t, store.Startups().Create(ctx, &entity.Startup{ID: "s-b", Name: "Beta", CreatedAt: now}))
	catID := "cat-1"
	require.NoError(t, store.Partners().Create(ctx, &entity.Partner{
		ID: "p-self", Name: "Cloud Credits", CategoryID: &catID, ServiceType: entity.ServiceTypeSelfService,
		SelfServiceInfo: &code, IsActive: true, CreatedAt: now,
	}))
	require.NoError(t, store.Partners().Create(ctx, &entity.Partner{
		ID: "p-appr", Name: "Legal Advisory", ServiceType: entity.ServiceTypeApprovalRequired, IsActive: true, CreatedAt: now,
	}))

	collabUC := collaboration.NewUseCase(store.Collaborations(), store.Partners(), store.Startups(), store, nil)
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), store.Startups(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		CategoryUC:      usecase.NewCategoryUseCase(store.Categories(), store.Partners()),
		PartnerUC:       usecase.NewPartnerUseCase(store.Partners(), store.Categories(), store.Collaborations()),
		StartupUC:       usecase.NewStartupUseCase(store.Startups(), store.Collaborations(), store),
		ReviewUC:        usecase.NewReviewUseCase(store.Reviews(), store.Collaborations(), store.Partners(), store.Startups()),
		CollaborationUC: collabUC,
		ReportUC:        report.NewUseCase(store.Reports(), export.NewExcelReportExporter(), export.NewPDFReportExporter()),
		DashboardUC: appanalytics.NewDashboardUseCase(
			store.Partners(), store.Startups(), store.Collaborations(), store.Reviews(), collabUC,
		),
		JWTSecret: testJWTSecret,
	}

	app := fiber.New()
	apphttp.Router(app, deps)
	return app, store
}

func bearer(t *testing.T, userID, startupID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, startupID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func adminToken(t *testing.T) string    { return bearer(t, "u-admin", "", entity.RoleAdmin) }
func startupAToken(t *testing.T) string { return bearer(t, "u-a", "s-a", entity.RoleStartup) }
func startupBToken(t *testing.T) string { return bearer(t, "u-b", "s-b", entity.RoleStartup) }

func call(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCollaborations_SelfServiceActivaYRevelaCodigo(t *testing.T) {
	app, _ := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-self"}, startupAToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.CollaborationResponse](t, resp)

	assert.Equal(t, string(entity.StatusSelfActivated), out.Status)
	assert.Equal(t, "s-a", out.StartupID, "la startup sale del token")
	require.NotNil(t, out.Partner)
	require.NotNil(t, out.Partner.SelfServiceInfo)
	assert.Equal(t, selfServiceCode, *out.Partner.SelfServiceInfo)

	dup := call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-self"}, startupAToken(t))
	assert.Equal(t, http.StatusConflict, dup.StatusCode)
	errBody := decode[dto.ErrorResponse](t, dup)
	assert.Equal(t, "DUPLICATE_ACTIVE_COLLABORATION", errBody.Code)
}

func TestCollaborations_CicloDeAprobacion(t *testing.T) {
	app, _ := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-appr"}, startupAToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CollaborationResponse](t, resp)
	assert.Equal(t, string(entity.StatusRequested), created.Status)
	path := "/api/collaborations/" + created.ID

	// La startup no puede cambiar el estado.
	resp = call(t, app, http.MethodPut, path, map[string]string{"status": "IN_PROGRESS"}, startupAToken(t))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Rechazo sin motivo.
	resp = call(t, app, http.MethodPut, path, map[string]string{"status": "CANCELLED"}, adminToken(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPut, path, map[string]string{"status": "IN_PROGRESS"}, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	approved := decode[dto.CollaborationResponse](t, resp)
	assert.Equal(t, string(entity.StatusInProgress), approved.Status)
	assert.NotNil(t, approved.StartDate)

	resp = call(t, app, http.MethodPut, path, map[string]string{"status": "IN_PROGRESS"}, adminToken(t))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPut, path, map[string]any{"status": "COMPLETED", "actualSaving": 1500000}, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	done := decode[dto.CollaborationResponse](t, resp)
	assert.Equal(t, string(entity.StatusCompleted), done.Status)
	require.NotNil(t, done.ActualSaving)
	assert.True(t, done.ActualSaving.Equal(decimal.NewFromInt(1_500_000)))
	assert.True(t, done.IsTerminal)
	assert.Empty(t, done.AllowedActions)
}

func TestCollaborations_RechazoConMotivo(t *testing.T) {
	app, _ := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-appr"}, startupAToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CollaborationResponse](t, resp)

	resp = call(t, app, http.MethodPut, "/api/collaborations/"+created.ID,
		map[string]string{"status": "CANCELLED", "rejectionReason": "sin presupuesto"}, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.CollaborationResponse](t, resp)
	assert.Equal(t, string(entity.StatusCancelled), out.Status)
	require.NotNil(t, out.RejectionReason)
	assert.Equal(t, "sin presupuesto", *out.RejectionReason)
}

func TestCollaborations_AceptaNombresSnakeCase(t *testing.T) {
	app, _ := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-appr"}, startupAToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	path := "/api/collaborations/" + decode[dto.CollaborationResponse](t, resp).ID

	resp = call(t, app, http.MethodPut, path, map[string]string{"status": "IN_PROGRESS"}, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodPut, path, map[string]any{"status": "COMPLETED", "actual_saving": 250000}, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	done := decode[dto.CollaborationResponse](t, resp)
	require.NotNil(t, done.ActualSaving)
	assert.True(t, done.ActualSaving.Equal(decimal.NewFromInt(250_000)))
}

func TestCollaborations_AdminFiltraPorStartup(t *testing.T) {
	app, _ := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-appr"}, startupAToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-appr"}, startupBToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, q := range []string{"startupId=s-a", "startup_id=s-a"} {
		resp = call(t, app, http.MethodGet, "/api/collaborations?"+q, nil, adminToken(t))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		list := decode[[]dto.CollaborationResponse](t, resp)
		require.Len(t, list, 1, q)
		assert.Equal(t, "s-a", list[0].StartupID, q)
	}

	resp = call(t, app, http.MethodGet, "/api/collaborations?partnerId=p-appr&status=REQUESTED", nil, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.CollaborationResponse](t, resp), 2)
}

func TestCollaborations_AislamientoEntreStartups(t *testing.T) {
	app, _ := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-appr"}, startupAToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CollaborationResponse](t, resp)

	resp = call(t, app, http.MethodGet, "/api/collaborations/"+created.ID, nil, startupBToken(t))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// startup_id en la query no amplía el alcance de una startup.
	resp = call(t, app, http.MethodGet, "/api/collaborations?startup_id=s-a", nil, startupBToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.CollaborationResponse](t, resp))

	resp = call(t, app, http.MethodGet, "/api/collaborations", nil, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.CollaborationResponse](t, resp), 1)
}

func TestCollaborations_SinToken(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/collaborations", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPartners_CodigoSelfServiceOcultoParaStartups(t *testing.T) {
	app, _ := newAPI(t)

	resp := call(t, app, http.MethodGet, "/api/partners/p-self", nil, startupAToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decode[dto.PartnerResponse](t, resp).SelfServiceInfo)

	resp = call(t, app, http.MethodGet, "/api/partners/p-self", nil, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, decode[dto.PartnerResponse](t, resp).SelfServiceInfo)
}

func TestPartners_EscrituraSoloAdmin(t *testing.T) {
	app, _ := newAPI(t)
	body := map[string]any{"name": "Marketing Co", "service_type": "APPROVAL_REQUIRED"}

	resp := call(t, app, http.MethodPost, "/api/partners", body, startupAToken(t))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/partners", body, adminToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.PartnerResponse](t, resp)
	assert.True(t, out.IsActive)
}

func TestPartners_BorradoConColaboracionesDevuelve409(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-appr"}, startupAToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/partners/p-appr", nil, adminToken(t))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "HAS_DEPENDENTS", decode[dto.ErrorResponse](t, resp).Code)
}

func TestReviews_SoloColaboracionesFinalizadas(t *testing.T) {
	app, _ := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-appr"}, startupAToken(t))
	pending := decode[dto.CollaborationResponse](t, resp)
	resp = call(t, app, http.MethodPost, "/api/reviews", map[string]any{"collaboration_id": pending.ID, "rating": 5}, startupAToken(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-self"}, startupAToken(t))
	active := decode[dto.CollaborationResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/reviews", map[string]any{"collaboration_id": active.ID, "rating": 5}, startupBToken(t))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo la startup dueña reseña")

	resp = call(t, app, http.MethodPost, "/api/reviews", map[string]any{"collaboration_id": active.ID, "rating": 5}, startupAToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/reviews", map[string]any{"collaboration_id": active.ID, "rating": 4}, startupAToken(t))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/reviews?partner_id=p-self", nil, startupBToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ReviewResponse](t, resp), 1)
}

func TestReports_JSONYExportacion(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodPost, "/api/collaborations", map[string]string{"partner_id": "p-self"}, startupAToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/reports", nil, startupAToken(t))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/reports", nil, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw := decode[map[string]json.RawMessage](t, resp)
	for _, key := range []string{"period", "summary", "serviceTypeBreakdown", "categoryBreakdown", "startupBreakdown", "collaborations"} {
		assert.Contains(t, raw, key)
	}
	var rep dto.ReportResponse
	require.NoError(t, json.Unmarshal(mustJSON(t, raw), &rep))
	assert.Equal(t, 1, rep.Summary.TotalCollaborations)
	assert.Equal(t, 1, rep.Summary.CompletedCollaborations, "SELF_ACTIVATED cuenta como completada")
	assert.Equal(t, 1, rep.ServiceTypeBreakdown.SelfService)
	assert.Len(t, rep.Collaborations, 1)

	resp = call(t, app, http.MethodGet, "/api/reports?startDate=2025-01-01&endDate=2099-12-31", nil, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var period struct {
		Period map[string]*time.Time `json:"period"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&period))
	resp.Body.Close()
	require.NotNil(t, period.Period["startDate"])
	require.NotNil(t, period.Period["endDate"])
	assert.Equal(t, 2099, period.Period["endDate"].Year())

	resp = call(t, app, http.MethodGet, "/api/reports?startDate=2025-02-01&endDate=2025-01-01", nil, adminToken(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/reports/export?format=xlsx", nil, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.NewExcelReportExporter().ContentType(), resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "impact_report_")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp = call(t, app, http.MethodGet, "/api/reports/export?format=pdf", nil, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = call(t, app, http.MethodGet, "/api/reports/export?format=csv", nil, adminToken(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboard_SoloAdmin(t *testing.T) {
	app, _ := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/dashboard/summary", nil, startupAToken(t))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/dashboard/summary", nil, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 2, out.ActivePartners)
	assert.Equal(t, 2, out.TotalStartups)
}

func TestAuth_LoginYRegistroProtegido(t *testing.T) {
	app, store := newAPI(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: "u-admin", Email: "admin@alianzas.io", PasswordHash: string(hash), Role: entity.RoleAdmin,
	}))

	resp := call(t, app, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@alianzas.io", "password": "nope-nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@alianzas.io", "password": "password1"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)

	newUser := map[string]string{"email": "founder@alpha.io", "password": "password1", "startup_id": "s-a"}
	resp = call(t, app, http.MethodPost, "/api/auth/register", newUser, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/register", newUser, "Bearer "+login.Token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "s-a", decode[dto.UserResponse](t, resp).StartupID)
}

package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/application/report"
	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/impact"
	"github.com/jhoicas/Alianzas-api/internal/infrastructure/memory"
)

type stubExporter struct {
	got *impact.Report
}

func (s *stubExporter) Format() string      { return "csv" }
func (s *stubExporter) ContentType() string { return "text/csv" }
func (s *stubExporter) Render(rep *impact.Report, _ time.Time) ([]byte, error) {
	s.got = rep
	return []byte("ok"), nil
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	one := decimal.NewFromInt(1_000_000)
	two := decimal.NewFromInt(2_000_000)
	actual := decimal.NewFromInt(1_500_000)
	catID := "cat-cloud"
	jan := func(d int) time.Time { return time.Date(2025, 1, d, 15, 0, 0, 0, time.Local) }

	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: catID, Name: "Cloud"}))
	require.NoError(t, store.Partners().Create(ctx, &entity.Partner{ID: "p-1", Name: "AWS", CategoryID: &catID, ServiceType: entity.ServiceTypeSelfService, EstimatedSaving: &one, IsActive: true}))
	require.NoError(t, store.Partners().Create(ctx, &entity.Partner{ID: "p-2", Name: "Law", ServiceType: entity.ServiceTypeApprovalRequired, EstimatedSaving: &two, IsActive: true}))
	require.NoError(t, store.Startups().Create(ctx, &entity.Startup{ID: "s-1", Name: "Alpha"}))
	require.NoError(t, store.Collaborations().Create(ctx, &entity.Collaboration{ID: "c-1", StartupID: "s-1", PartnerID: "p-1", Status: entity.StatusCompleted, ActualSaving: &actual, CreatedAt: jan(10)}))
	require.NoError(t, store.Collaborations().Create(ctx, &entity.Collaboration{ID: "c-2", StartupID: "s-1", PartnerID: "p-2", Status: entity.StatusInProgress, CreatedAt: jan(20)}))
	require.NoError(t, store.Collaborations().Create(ctx, &entity.Collaboration{ID: "c-3", StartupID: "s-gone", PartnerID: "p-2", Status: entity.StatusCancelled, CreatedAt: jan(31)}))
	require.NoError(t, store.Reviews().Create(ctx, &entity.Review{ID: "r-1", CollaborationID: "c-1", Rating: 5}))
	return store
}

func TestGenerate_PeriodoConFinInclusivo(t *testing.T) {
	uc := report.NewUseCase(seed(t).Reports())

	out, err := uc.Generate(context.Background(), dto.ReportRequest{StartDate: "2025-01-01", EndDate: "2025-01-20"})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Summary.TotalCollaborations, "c-2 creada el 20 a las 15:00 entra en el rango")
	assert.True(t, out.Summary.TotalEstimatedSaving.Equal(decimal.NewFromInt(3_000_000)))
	assert.True(t, out.Summary.TotalActualSaving.Equal(decimal.NewFromInt(1_500_000)))
	assert.Equal(t, 5.0, out.Summary.AvgRating)
	require.Len(t, out.CategoryBreakdown, 1)
	assert.Equal(t, "Cloud", out.CategoryBreakdown[0].Name)
	require.Len(t, out.Collaborations, 2)
	require.NotNil(t, out.Collaborations[0].CategoryName)
	assert.Nil(t, out.Collaborations[1].CategoryName, "partner sin categoría")
}

func TestGenerate_SinRangoIncluyeStartupDesconocida(t *testing.T) {
	uc := report.NewUseCase(seed(t).Reports())

	out, err := uc.Generate(context.Background(), dto.ReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, 3, out.Summary.TotalCollaborations)
	var unknown *dto.StartupBreakdownDTO
	for i := range out.StartupBreakdown {
		if out.StartupBreakdown[i].StartupID == "s-gone" {
			unknown = &out.StartupBreakdown[i]
		}
	}
	require.NotNil(t, unknown)
	assert.False(t, unknown.Known)
}

func TestParsePeriod_Errores(t *testing.T) {
	uc := report.NewUseCase(memory.NewStore().Reports())

	_, err := uc.ParsePeriod("2025-13-01", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ParsePeriod("", "ayer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ParsePeriod("2025-02-01", "2025-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.ParsePeriod("2025-01-01", "2025-01-01")
	require.NoError(t, err)
	require.NotNil(t, p.End)
	assert.Equal(t, 23, p.End.Hour())
	assert.Equal(t, 59, p.End.Second())

	p, err = uc.ParsePeriod("2025-01-01T00:00:00Z", "")
	require.NoError(t, err)
	assert.Nil(t, p.End)
}

func TestParsePeriod_FinDeDiaConCambioDeHorario(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("zona horaria no disponible")
	}
	uc := report.NewUseCase(memory.NewStore().Reports()).WithLocation(ny)

	// 2025-03-09 dura 23 horas en Nueva York.
	p, err := uc.ParsePeriod("", "2025-03-09")
	require.NoError(t, err)
	require.NotNil(t, p.End)
	assert.Equal(t, 9, p.End.Day())
	assert.Equal(t, 23, p.End.Hour())
	assert.Equal(t, 59, p.End.Minute())

	// 2025-11-02 dura 25 horas.
	p, err = uc.ParsePeriod("", "2025-11-02")
	require.NoError(t, err)
	assert.Equal(t, 2, p.End.Day())
	assert.Equal(t, 23, p.End.Hour())
	assert.True(t, p.End.Before(time.Date(2025, 11, 3, 0, 0, 0, 0, ny)))
}

func TestExport_FormatoYNombreDeArchivo(t *testing.T) {
	stub := &stubExporter{}
	uc := report.NewUseCase(seed(t).Reports(), stub)

	f, err := uc.Export(context.Background(), dto.ReportRequest{Format: "CSV"})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", f.ContentType)
	assert.Regexp(t, `^impact_report_\d{4}-\d{2}-\d{2}\.csv$`, f.Filename)
	assert.Equal(t, []byte("ok"), f.Data)
	require.NotNil(t, stub.got)
	assert.Equal(t, 3, stub.got.Summary.TotalCollaborations)

	_, err = uc.Export(context.Background(), dto.ReportRequest{Format: "docx"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Export(context.Background(), dto.ReportRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "xlsx no registrado en este test")
}

package collaboration_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alianzas-api/internal/application/collaboration"
	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/infrastructure/memory"
)

var (
	admin     = entity.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	startupA  = entity.Actor{UserID: "u-a", StartupID: "s-a", Role: entity.RoleStartup}
	startupB  = entity.Actor{UserID: "u-b", StartupID: "s-b", Role: entity.RoleStartup}
	secretKey = "PROMO-2025"
)

func setup(t *testing.T) (*collaboration.UseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()
	saving := decimal.NewFromInt(1_000_000)

	require.NoError(t, store.Startups().Create(ctx, &entity.Startup{ID: "s-a", Name: "Alpha", CreatedAt: now}))
	require.NoError(t, store.Startups().Create(ctx, &entity.Startup{ID: "s-b", Name: "Beta", CreatedAt: now}))
	require.NoError(t, store.Partners().Create(ctx, &entity.Partner{
		ID: "p-self", Name: "Cloud Credits", ServiceType: entity.ServiceTypeSelfService,
		SelfServiceInfo: &secretKey, EstimatedSaving: &saving, IsActive: true,
	}))
	require.NoError(t, store.Partners().Create(ctx, &entity.Partner{
		ID: "p-appr", Name: "Legal Advisory", ServiceType: entity.ServiceTypeApprovalRequired, IsActive: true,
	}))
	require.NoError(t, store.Partners().Create(ctx, &entity.Partner{
		ID: "p-off", Name: "Retired", ServiceType: entity.ServiceTypeApprovalRequired, IsActive: false,
	}))

	uc := collaboration.NewUseCase(store.Collaborations(), store.Partners(), store.Startups(), store, nil)
	return uc, store
}

func TestCreate_SelfServiceQuedaActivadaConFechaDeInicio(t *testing.T) {
	uc, _ := setup(t)
	before := time.Now()

	out, err := uc.Create(context.Background(), startupA, dto.CreateCollaborationRequest{PartnerID: "p-self"})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusSelfActivated), out.Status)
	require.NotNil(t, out.StartDate)
	assert.False(t, out.StartDate.Before(before))
	assert.True(t, out.IsTerminal)
	assert.Empty(t, out.AllowedActions)
	require.NotNil(t, out.Partner)
	require.NotNil(t, out.Partner.SelfServiceInfo, "el código se muestra tras la activación")
	assert.Equal(t, secretKey, *out.Partner.SelfServiceInfo)
	assert.Equal(t, "Cloud Credits", out.Title)
}

func TestCreate_ApprovalRequiredQuedaSolicitada(t *testing.T) {
	uc, _ := setup(t)

	out, err := uc.Create(context.Background(), startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr", Title: "Revisión de contratos"})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusRequested), out.Status)
	assert.Nil(t, out.StartDate)
	assert.Equal(t, "Revisión de contratos", out.Title)
	assert.ElementsMatch(t, []string{"review", "approve", "reject"}, out.AllowedActions)
}

func TestCreate_DuplicadoActivoNoCreaFila(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	assert.ErrorIs(t, err, domain.ErrDuplicateActiveCollaboration)

	n, err := store.Collaborations().CountByStartup(ctx, "s-a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Otra startup sí puede solicitar el mismo partner
	_, err = uc.Create(ctx, startupB, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	assert.NoError(t, err)
}

func TestCreate_TrasCancelarSePuedeVolverASolicitar(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, first.ID, dto.UpdateCollaborationRequest{Status: "CANCELLED", RejectionReason: "sin cupo"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	assert.NoError(t, err)
}

func TestCreate_SolicitudesConcurrentesSoloUnaGana(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrDuplicateActiveCollaboration)
		}
	}
	assert.Equal(t, 1, ok)
	count, _ := store.Collaborations().CountByStartup(ctx, "s-a")
	assert.Equal(t, 1, count)
}

func TestCreate_Errores(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrPartnerNotFound)

	_, err = uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-off"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, admin, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "admin debe indicar startup_id")

	_, err = uc.Create(ctx, admin, dto.CreateCollaborationRequest{PartnerID: "p-appr", StartupID: "s-x"})
	assert.ErrorIs(t, err, domain.ErrStartupNotFound)

	// Con ambos inexistentes, manda el partner.
	_, err = uc.Create(ctx, admin, dto.CreateCollaborationRequest{PartnerID: "p-x", StartupID: "s-x"})
	assert.ErrorIs(t, err, domain.ErrPartnerNotFound)

	sinStartup := entity.Actor{UserID: "u-z", Role: entity.RoleStartup}
	_, err = uc.Create(ctx, sinStartup, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_StartupNoPuedeSuplantarOtraStartup(t *testing.T) {
	uc, _ := setup(t)

	out, err := uc.Create(context.Background(), startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr", StartupID: "s-b"})
	require.NoError(t, err)
	assert.Equal(t, "s-a", out.StartupID)
}

func TestUpdate_FlujoCompletoDeAprobacion(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, admin, dto.CreateCollaborationRequest{PartnerID: "p-appr", StartupID: "s-b"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, c.ID, dto.UpdateCollaborationRequest{Status: "REVIEWING"})
	require.NoError(t, err)
	assert.Equal(t, "REVIEWING", out.Status)

	out, err = uc.Update(ctx, c.ID, dto.UpdateCollaborationRequest{Status: "IN_PROGRESS"})
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", out.Status)
	require.NotNil(t, out.StartDate)

	saving := decimal.RequireFromString("1500000")
	out, err = uc.Update(ctx, c.ID, dto.UpdateCollaborationRequest{Status: "COMPLETED", ActualSaving: &saving})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", out.Status)
	require.NotNil(t, out.EndDate)
	require.NotNil(t, out.ActualSaving)
	assert.True(t, out.ActualSaving.Equal(saving))

	_, err = uc.Update(ctx, c.ID, dto.UpdateCollaborationRequest{Status: "IN_PROGRESS"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "COMPLETED no se reabre")
}

func TestUpdate_RechazoSinMotivoNoPersiste(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, c.ID, dto.UpdateCollaborationRequest{Status: "CANCELLED"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := store.Collaborations().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRequested, stored.Status)
}

func TestUpdate_SoloNotasEnEstadoTerminal(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-self"})
	require.NoError(t, err)

	notes := "código enviado por correo"
	out, err := uc.Update(ctx, c.ID, dto.UpdateCollaborationRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "SELF_ACTIVATED", out.Status)
	require.NotNil(t, out.Notes)
	assert.Equal(t, notes, *out.Notes)
}

func TestUpdate_EstadoDesconocidoYNoEncontrado(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, c.ID, dto.UpdateCollaborationRequest{Status: "PENDING"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, c.ID, dto.UpdateCollaborationRequest{Status: "SELF_ACTIVATED"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateCollaborationRequest{Status: "IN_PROGRESS"})
	assert.ErrorIs(t, err, domain.ErrCollaborationNotFound)
}

func TestList_StartupSoloVeLasSuyas(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, startupB, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, startupB, dto.CreateCollaborationRequest{PartnerID: "p-self"})
	require.NoError(t, err)

	list, err := uc.List(ctx, startupA, dto.CollaborationFilter{StartupID: "s-b"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s-a", list[0].StartupID)

	all, err := uc.List(ctx, admin, dto.CollaborationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := uc.List(ctx, admin, dto.CollaborationFilter{StartupID: "s-b", Status: "SELF_ACTIVATED"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p-self", filtered[0].PartnerID)
}

func TestList_OcultaCodigoSelfServiceHastaActivar(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	now := time.Now()

	// Colaboración cancelada con el partner self-service: la startup no debe ver el código
	require.NoError(t, store.Collaborations().Create(ctx, &entity.Collaboration{
		ID: "c-old", StartupID: "s-a", PartnerID: "p-self", Status: entity.StatusCancelled, CreatedAt: now, UpdatedAt: now,
	}))

	list, err := uc.List(ctx, startupA, dto.CollaborationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Partner)
	assert.Nil(t, list[0].Partner.SelfServiceInfo)

	got, err := uc.GetByID(ctx, admin, "c-old")
	require.NoError(t, err)
	assert.NotNil(t, got.Partner.SelfServiceInfo, "admin siempre lo ve")
}

func TestGetByID_OtraStartupEsForbidden(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, startupB, c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.GetByID(ctx, startupA, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Startup.Name)
}

func TestDelete(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, startupA, dto.CreateCollaborationRequest{PartnerID: "p-appr"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, c.ID))
	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrCollaborationNotFound)
}

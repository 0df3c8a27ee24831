package lifecycle_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/lifecycle"
)

var now = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func collab(status entity.CollaborationStatus) *entity.Collaboration {
	return &entity.Collaboration{ID: "c-1", StartupID: "s-1", PartnerID: "p-1", Status: status}
}

func TestInitialState_SelfServiceActivaConFechaDeInicio(t *testing.T) {
	status, start, err := lifecycle.InitialState(entity.ServiceTypeSelfService, now)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSelfActivated, status)
	require.NotNil(t, start)
	assert.True(t, start.Equal(now))
}

func TestInitialState_ApprovalRequiredQuedaSolicitada(t *testing.T) {
	status, start, err := lifecycle.InitialState(entity.ServiceTypeApprovalRequired, now)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRequested, status)
	assert.Nil(t, start)
}

func TestInitialState_TipoDesconocido(t *testing.T) {
	_, _, err := lifecycle.InitialState("FREE", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_ApproveSobrescribeFechaDeInicio(t *testing.T) {
	for _, from := range []entity.CollaborationStatus{entity.StatusRequested, entity.StatusReviewing} {
		c := collab(from)
		old := now.Add(-72 * time.Hour)
		c.StartDate = &old

		require.NoError(t, lifecycle.Apply(c, lifecycle.CommandApprove, lifecycle.Params{}, now))
		assert.Equal(t, entity.StatusInProgress, c.Status)
		require.NotNil(t, c.StartDate)
		assert.True(t, c.StartDate.Equal(now), "start_date debe ser el instante de la transición")
	}
}

func TestApply_RejectSinMotivoFalla(t *testing.T) {
	for _, reason := range []string{"", "   "} {
		c := collab(entity.StatusRequested)
		err := lifecycle.Apply(c, lifecycle.CommandReject, lifecycle.Params{RejectionReason: reason}, now)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, entity.StatusRequested, c.Status, "el estado no cambia si la validación falla")
		assert.Nil(t, c.RejectionReason)
	}
}

func TestApply_RejectConMotivo(t *testing.T) {
	c := collab(entity.StatusReviewing)
	err := lifecycle.Apply(c, lifecycle.CommandReject, lifecycle.Params{RejectionReason: " presupuesto agotado "}, now)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, c.Status)
	require.NotNil(t, c.RejectionReason)
	assert.Equal(t, "presupuesto agotado", *c.RejectionReason)
}

func TestApply_CompleteGuardaFechaFinYAhorro(t *testing.T) {
	c := collab(entity.StatusInProgress)
	saving := decimal.NewFromInt(1_500_000)

	require.NoError(t, lifecycle.Apply(c, lifecycle.CommandComplete, lifecycle.Params{ActualSaving: &saving}, now))
	assert.Equal(t, entity.StatusCompleted, c.Status)
	require.NotNil(t, c.EndDate)
	assert.True(t, c.EndDate.Equal(now))
	require.NotNil(t, c.ActualSaving)
	assert.True(t, c.ActualSaving.Equal(saving))
}

func TestApply_CompleteSinAhorroEsValido(t *testing.T) {
	c := collab(entity.StatusInProgress)
	require.NoError(t, lifecycle.Apply(c, lifecycle.CommandComplete, lifecycle.Params{}, now))
	assert.Nil(t, c.ActualSaving)
	assert.NotNil(t, c.EndDate)
}

func TestApply_CompleteConAhorroNegativoFalla(t *testing.T) {
	c := collab(entity.StatusInProgress)
	neg := decimal.NewFromInt(-1)
	err := lifecycle.Apply(c, lifecycle.CommandComplete, lifecycle.Params{ActualSaving: &neg}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.StatusInProgress, c.Status)
	assert.Nil(t, c.EndDate)
}

func TestApply_TransicionesIlegales(t *testing.T) {
	cases := []struct {
		from entity.CollaborationStatus
		cmd  lifecycle.Command
	}{
		{entity.StatusRequested, lifecycle.CommandComplete},
		{entity.StatusReviewing, lifecycle.CommandReview},
		{entity.StatusInProgress, lifecycle.CommandApprove},
		{entity.StatusInProgress, lifecycle.CommandReject},
		{entity.StatusCompleted, lifecycle.CommandApprove},
		{entity.StatusCompleted, lifecycle.CommandComplete},
		{entity.StatusCancelled, lifecycle.CommandApprove},
		{entity.StatusSelfActivated, lifecycle.CommandComplete},
		{entity.StatusSelfActivated, lifecycle.CommandReject},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"_"+string(tc.cmd), func(t *testing.T) {
			c := collab(tc.from)
			err := lifecycle.Apply(c, tc.cmd, lifecycle.Params{RejectionReason: "x"}, now)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Equal(t, tc.from, c.Status)
		})
	}
}

func TestAllowed_EstadosTerminalesNoTienenSalida(t *testing.T) {
	for _, s := range entity.AllStatuses {
		if s.IsTerminal() {
			assert.Empty(t, lifecycle.Allowed(s), "estado terminal %s", s)
		} else {
			assert.NotEmpty(t, lifecycle.Allowed(s), "estado no terminal %s", s)
		}
	}
}

func TestCommandFor(t *testing.T) {
	cmd, err := lifecycle.CommandFor(entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.CommandComplete, cmd)

	_, err = lifecycle.CommandFor(entity.StatusSelfActivated)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = lifecycle.CommandFor(entity.StatusRequested)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestStatus_ConjuntoActivo(t *testing.T) {
	assert.True(t, entity.StatusRequested.IsActive())
	assert.True(t, entity.StatusReviewing.IsActive())
	assert.True(t, entity.StatusInProgress.IsActive())
	assert.True(t, entity.StatusSelfActivated.IsActive())
	assert.False(t, entity.StatusCompleted.IsActive())
	assert.False(t, entity.StatusCancelled.IsActive())
}

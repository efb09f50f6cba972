package logic

import (
	"context"
	"testing"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditFindsViolations(t *testing.T) {
	f := fundedFixture(t)
	ctx := context.Background()

	violations, err := NewAuditLogic(f.store).Audit(ctx)
	require.NoError(t, err)
	assert.Empty(t, violations)

	now := time.Now()
	broken := model.CharityProjectModel{Id: 100, Name: "broken", Description: "d"}
	broken.Investment = model.NewInvestment(10, now)
	broken.InvestedAmount = 10
	f.store.Projects[broken.Id] = broken

	violations, err = NewAuditLogic(f.store).Audit(ctx)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, int64(100), violations[0].Id)
	assert.Equal(t, model.KindCharityProject, violations[0].Kind)
}

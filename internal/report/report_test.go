package report

import (
	"testing"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedProject(id int64, name string, created time.Time, took time.Duration) model.CharityProjectModel {
	p := model.CharityProjectModel{Id: id, Name: name, Description: name + " description"}
	p.Investment = model.NewInvestment(100, created)
	p.InvestedAmount = 100
	p.FullyInvested = true
	closed := created.Add(took)
	p.CloseDate = &closed
	return p
}

func TestBuildRowsSortsByFundingSpeed(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	open := model.CharityProjectModel{Id: 9, Name: "open"}
	open.Investment = model.NewInvestment(100, created)

	rows := BuildRows([]model.CharityProjectModel{
		closedProject(1, "slow", created, 72*time.Hour),
		open,
		closedProject(2, "fast", created, 10*time.Minute),
		closedProject(3, "medium", created, 3*time.Hour),
		closedProject(4, "fast twin", created, 10*time.Minute),
	})

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"fast", "fast twin", "medium", "slow"},
		[]string{rows[0].Name, rows[1].Name, rows[2].Name, rows[3].Name})

	assert.Equal(t, "10 мин. 00 сек.", rows[0].CollectionTime)
	assert.Equal(t, "3 ч. 00 мин.", rows[2].CollectionTime)
	assert.Equal(t, "3 дн. 00 ч. 00 мин.", rows[3].CollectionTime)
	assert.Equal(t, "2024-05-04 09:00", rows[3].CloseDate)
	assert.Equal(t, int64(100), rows[3].CollectedAmount)
	assert.Equal(t, "slow description", rows[3].Description)
}

func TestBuildRowsEmpty(t *testing.T) {
	assert.Empty(t, BuildRows(nil))
}

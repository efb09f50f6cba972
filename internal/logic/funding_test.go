package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/event"
	"github.com/Frenky19/QRkot-spreadsheets/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonationsWaitForProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	d1, err := f.donations.CreateDonation(ctx, 1, DonationInput{FullAmount: 100, Comment: "first"})
	require.NoError(t, err)
	d2, err := f.donations.CreateDonation(ctx, 2, DonationInput{FullAmount: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(0), d1.InvestedAmount)
	assert.False(t, d1.FullyInvested)

	project, err := f.projects.CreateProject(ctx, ProjectInput{Name: "cats", Description: "food", FullAmount: 300})
	require.NoError(t, err)

	assert.Equal(t, int64(300), project.InvestedAmount)
	assert.True(t, project.FullyInvested)
	require.NotNil(t, project.CloseDate)

	stored1 := f.store.Donations[d1.Id]
	assert.Equal(t, int64(100), stored1.InvestedAmount)
	assert.True(t, stored1.FullyInvested)
	assert.Equal(t, *project.CloseDate, *stored1.CloseDate)

	stored2 := f.store.Donations[d2.Id]
	assert.Equal(t, int64(200), stored2.InvestedAmount)
	assert.False(t, stored2.FullyInvested)
	assert.Nil(t, stored2.CloseDate)

	assert.Equal(t, []event.Type{
		event.TypeDonationCreated,
		event.TypeDonationCreated,
		event.TypeProjectCreated,
		event.TypeFunded,
		event.TypeFunded,
	}, f.sink.types())
}

func TestDonationFillsOpenProjectsInOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p1, err := f.projects.CreateProject(ctx, ProjectInput{Name: "first", Description: "d", FullAmount: 50})
	require.NoError(t, err)
	p2, err := f.projects.CreateProject(ctx, ProjectInput{Name: "second", Description: "d", FullAmount: 50})
	require.NoError(t, err)

	donation, err := f.donations.CreateDonation(ctx, 7, DonationInput{FullAmount: 70})
	require.NoError(t, err)

	assert.True(t, donation.FullyInvested)
	assert.Equal(t, int64(70), donation.InvestedAmount)
	assert.True(t, f.store.Projects[p1.Id].FullyInvested)
	assert.Equal(t, int64(20), f.store.Projects[p2.Id].InvestedAmount)
	assert.False(t, f.store.Projects[p2.Id].FullyInvested)

	mine, err := f.donations.ListUserDonations(ctx, 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, donation.Id, mine[0].Id)

	others, err := f.donations.ListUserDonations(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestFundingRollsBackOnSaveFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.donations.CreateDonation(ctx, 1, DonationInput{FullAmount: 100})
	require.NoError(t, err)

	f.store.SaveErr = errors.New("connection reset")
	_, err = f.projects.CreateProject(ctx, ProjectInput{Name: "cats", Description: "food", FullAmount: 50})
	assert.ErrorIs(t, err, errno.ErrDatabase)

	assert.Len(t, f.store.Projects, 0)
	for _, d := range f.store.Donations {
		assert.Equal(t, int64(0), d.InvestedAmount)
	}
}

func TestClosingProjectInvalidatesReportCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	reports := NewReportLogic(f.store, f.locker, f.cache, nil, f.sink, time.Minute)

	rows, err := reports.ClosedProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = f.projects.CreateProject(ctx, ProjectInput{Name: "cats", Description: "food", FullAmount: 10})
	require.NoError(t, err)
	_, err = f.donations.CreateDonation(ctx, 1, DonationInput{FullAmount: 10})
	require.NoError(t, err)

	rows, err = reports.ClosedProjects(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "cats", rows[0].Name)
	assert.IsType(t, report.Row{}, rows[0])
}

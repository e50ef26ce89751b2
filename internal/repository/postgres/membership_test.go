package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artevents-backend/internal/domain"
)

func TestMembershipRepository_GetRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMembershipRepository(db)
	ctx := context.Background()

	t.Run("returns the stored role", func(t *testing.T) {
		mock.ExpectQuery("SELECT role FROM event_memberships").
			WithArgs(int32(1), int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("ATTENDEE"))

		role, err := repo.GetRole(ctx, 1, 2)
		require.NoError(t, err)
		require.NotNil(t, role)
		assert.Equal(t, domain.RoleAttendee, *role)
	})

	t.Run("no row means visitor, not error", func(t *testing.T) {
		mock.ExpectQuery("SELECT role FROM event_memberships").
			WithArgs(int32(1), int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"role"}))

		role, err := repo.GetRole(ctx, 1, 9)
		require.NoError(t, err)
		assert.Nil(t, role)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_UpsertAttendee(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMembershipRepository(db)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO event_memberships").
		WithArgs(int32(1), int32(2), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpsertAttendee(ctx, 1, 2))

	// conflict against a HOST row touches no rows; still not an error
	mock.ExpectExec("INSERT INTO event_memberships").
		WithArgs(int32(1), int32(1), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpsertAttendee(ctx, 1, 1))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_RemoveInvited(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMembershipRepository(db)
	ctx := context.Background()

	// removal is scoped to the INVITED role so it never touches attendees
	mock.ExpectExec("DELETE FROM event_memberships").
		WithArgs(int32(1), int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RemoveInvited(ctx, 1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_ListAttendees(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMembershipRepository(db)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery("SELECT event_id, user_id, role, joined_at FROM event_memberships").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "user_id", "role", "joined_at"}).
			AddRow(1, 1, "HOST", now).
			AddRow(1, 2, "ATTENDEE", now.Add(time.Minute)))

	members, err := repo.ListAttendees(ctx, 1)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, domain.RoleHost, members[0].Role)
	assert.Equal(t, int32(2), members[1].UserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

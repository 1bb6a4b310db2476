package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func checkIn(t *testing.T, ctx context.Context, userID string, day time.Time, status attendance.Status) attendance.Attendance {
	t.Helper()

	at := day.Add(8 * time.Hour)
	created, err := postgresql.NewAttendanceRepository(testDB).Create(ctx, attendance.Attendance{
		UserID:          userID,
		Date:            day,
		CheckInTime:     &at,
		CheckInLocation: &attendance.Location{Lat: -6.2, Lng: 106.8},
		Status:          status,
	})
	require.NoError(t, err)
	return created
}

func TestAttendanceRepository_Create_OnePerDay(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB)
	u := createTestUser(t, ctx, "budi", user.RoleEmployee, "Engineering")

	created := checkIn(t, ctx, u.ID, testDay, attendance.StatusPresent)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2024-03-15", created.Date.Format("2006-01-02"))
	require.NotNil(t, created.CheckInLocation)
	assert.Equal(t, -6.2, created.CheckInLocation.Lat)

	at := testDay.Add(9 * time.Hour)
	_, err := repo.Create(ctx, attendance.Attendance{UserID: u.ID, Date: testDay, CheckInTime: &at, Status: attendance.StatusLate})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	found, err := repo.GetByUserAndDate(ctx, u.ID, testDay)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, attendance.StatusPresent, found.Status)
}

func TestAttendanceRepository_GetByUserAndDate_NotFound(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	u := createTestUser(t, ctx, "budi", user.RoleEmployee, "Engineering")

	_, err := postgresql.NewAttendanceRepository(testDB).GetByUserAndDate(ctx, u.ID, testDay)

	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_CheckOut_Once(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB)
	u := createTestUser(t, ctx, "budi", user.RoleEmployee, "Engineering")
	created := checkIn(t, ctx, u.ID, testDay, attendance.StatusPresent)

	out := testDay.Add(17*time.Hour + 30*time.Minute)
	duration := 570
	manual := attendance.CheckOutManual
	created.CheckOutTime = &out
	created.WorkDuration = &duration
	created.CheckOutType = &manual

	updated, err := repo.CheckOut(ctx, created)
	require.NoError(t, err)
	require.NotNil(t, updated.CheckOutTime)
	assert.Equal(t, 570, *updated.WorkDuration)
	require.NotNil(t, updated.CheckOutType)
	assert.Equal(t, attendance.CheckOutManual, *updated.CheckOutType)

	_, err = repo.CheckOut(ctx, created)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceRepository_ListByUser_Paginated(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB)
	u := createTestUser(t, ctx, "budi", user.RoleEmployee, "Engineering")

	for i := 0; i < 5; i++ {
		checkIn(t, ctx, u.ID, testDay.AddDate(0, 0, i), attendance.StatusPresent)
	}

	rows, total, err := repo.ListByUser(ctx, u.ID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03-19", rows[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-03-18", rows[1].Date.Format("2006-01-02"))

	rows, _, err = repo.ListByUser(ctx, u.ID, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAttendanceRepository_ListOpenByDate(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB)
	a := createTestUser(t, ctx, "alice", user.RoleEmployee, "Engineering")
	b := createTestUser(t, ctx, "bob", user.RoleEmployee, "Engineering")

	open := checkIn(t, ctx, a.ID, testDay, attendance.StatusPresent)
	closed := checkIn(t, ctx, b.ID, testDay, attendance.StatusLate)
	checkIn(t, ctx, a.ID, testDay.AddDate(0, 0, -1), attendance.StatusPresent)

	out := testDay.Add(17 * time.Hour)
	closed.CheckOutTime = &out
	_, err := repo.CheckOut(ctx, closed)
	require.NoError(t, err)

	rows, err := repo.ListOpenByDate(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, open.ID, rows[0].ID)
}

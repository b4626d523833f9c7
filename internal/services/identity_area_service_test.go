package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atomicsystems/atomic-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreaListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIdentityAreaService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	areas, err := svc.List(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, areas)
}

func TestAreaListPreloadsActiveSystems(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIdentityAreaService(db)

	userID := uuid.New()
	areaID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "color", "order", "is_active"}).
			AddRow(areaID.String(), userID.String(), "Health", "#3B82F6", 0, true))
	mock.ExpectQuery(`SELECT (.+) FROM "atomic_systems"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "identity_area_id", "name", "is_active"}).
			AddRow(uuid.New().String(), areaID.String(), "Morning run", true))

	areas, err := svc.List(userID)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "Health", areas[0].Name)
	require.Len(t, areas[0].Systems, 1)
	assert.Equal(t, "Morning run", areas[0].Systems[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAreaGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIdentityAreaService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestAreaCreateRejectsDuplicateName(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIdentityAreaService(db)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(uuid.New().String(), userID.String(), "Health"))

	_, err := svc.Create(userID, &dto.CreateIdentityAreaRequest{Name: "Health"})
	assert.ErrorIs(t, err, ErrDuplicateAreaName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAreaCreateAssignsNextSiblingOrder(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIdentityAreaService(db)

	userID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	// Three active siblings with max order 2.
	mock.ExpectQuery(`SELECT COALESCE\(MAX\("order"\), -1\) \+ 1 FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO "identity_areas"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	area, err := svc.Create(userID, &dto.CreateIdentityAreaRequest{Name: "Health"})
	require.NoError(t, err)
	assert.Equal(t, 3, area.Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAreaCreateFirstSiblingGetsOrderZero(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIdentityAreaService(db)

	userID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\("order"\), -1\) \+ 1 FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(0))
	// Order 0 is a zero-valued defaulted column, so the insert comes back
	// through a RETURNING clause.
	mock.ExpectQuery(`INSERT INTO "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"order"}).AddRow(0))

	area, err := svc.Create(userID, &dto.CreateIdentityAreaRequest{Name: "Health"})
	require.NoError(t, err)
	assert.Equal(t, 0, area.Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAreaCreateHonorsExplicitOrder(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIdentityAreaService(db)

	userID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO "identity_areas"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	order := 7
	area, err := svc.Create(userID, &dto.CreateIdentityAreaRequest{Name: "Health", Order: &order})
	require.NoError(t, err)
	assert.Equal(t, 7, area.Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAreaUpdateMissingArea(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIdentityAreaService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	name := "Renamed"
	_, err := svc.Update(uuid.New(), uuid.New(), &dto.UpdateIdentityAreaRequest{Name: &name})
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestAreaDeleteBlockedByActiveSystems(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIdentityAreaService(db)

	userID := uuid.New()
	areaID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "is_active"}).
			AddRow(areaID.String(), userID.String(), "Health", true))
	mock.ExpectQuery(`SELECT (.+) FROM "atomic_systems"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "atomic_systems"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := svc.Delete(userID, areaID)
	assert.ErrorIs(t, err, ErrAreaHasActiveSystems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAreaReorderRejectsForeignAreas(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewIdentityAreaService(db)

	// Two ids submitted, only one owned and active.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "identity_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Reorder(uuid.New(), []dto.ReorderItem{
		{ID: uuid.New(), Order: 0},
		{ID: uuid.New(), Order: 1},
	})
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atomicsystems/atomic-backend/internal/config"
	"github.com/atomicsystems/atomic-backend/internal/dto"
	"github.com/atomicsystems/atomic-backend/internal/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockDB opens gorm over a sqlmock connection. Default transactions are
// skipped so write expectations stay one statement each; services that need
// atomicity open explicit transactions themselves.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "auth-service-test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 720 * time.Hour,
		BcryptCost:       bcrypt.MinCost,
	}
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "not-an-email", Password: "Sufficient1", Name: "Tester"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "user@example.com", Password: "weak", Name: "Tester"})

	var policyErr *PasswordPolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.NotEmpty(t, policyErr.Violations)
}

func TestRegisterRejectsShortName(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "user@example.com", Password: "Sufficient1", Name: "X"})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(uuid.New().String(), "user@example.com"))

	_, err := svc.Register(&dto.RegisterRequest{Email: "USER@example.com", Password: "Sufficient1", Name: "Tester"})
	assert.ErrorIs(t, err, ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterFailsClosedOnUniquenessCheckError(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	// A store failure must not read as "email free" and reach the insert.
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnError(assert.AnError)

	_, err := svc.Register(&dto.RegisterRequest{Email: "user@example.com", Password: "Sufficient1", Name: "Tester"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginRejectsInvalidEmailFormat(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Login(&dto.LoginRequest{Email: "broken", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "Sufficient1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("Sufficient1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "is_active"}).
			AddRow(uuid.New().String(), "user@example.com", string(hash), false))

	_, err = svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "Sufficient1"})
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("TheRightOne1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "is_active"}).
			AddRow(uuid.New().String(), "user@example.com", string(hash), true))

	_, err = svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "TheWrongOne1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	db, _ := newMockDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	// An access token must never pass the refresh endpoint.
	raw, err := token.Sign([]byte(cfg.JWTSecret), uuid.New(), token.TypeAccess, time.Minute)
	require.NoError(t, err)

	_, err = svc.Refresh(raw)
	assert.ErrorIs(t, err, token.ErrInvalid)
}

func TestRefreshRejectsExpiredJWT(t *testing.T) {
	db, _ := newMockDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	raw, err := token.Sign([]byte(cfg.JWTSecret), uuid.New(), token.TypeRefresh, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Refresh(raw)
	assert.ErrorIs(t, err, token.ErrExpired)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	raw, err := token.Sign([]byte(cfg.JWTSecret), uuid.New(), token.TypeRefresh, time.Minute)
	require.NoError(t, err)

	// Valid JWT but no stored row: revoked by logout or rotated away.
	mock.ExpectQuery(`SELECT (.+) FROM "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = svc.Refresh(raw)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshDeletesExpiredStoredToken(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	userID := uuid.New()
	raw, err := token.Sign([]byte(cfg.JWTSecret), userID, token.TypeRefresh, time.Minute)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id", "expires_at"}).
			AddRow(uuid.New().String(), raw, userID.String(), time.Now().Add(-time.Hour)))
	mock.ExpectExec(`DELETE FROM "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = svc.Refresh(raw)
	assert.ErrorIs(t, err, ErrRefreshTokenExpired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshExpiredPurgeFailureStillRejects(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	userID := uuid.New()
	raw, err := token.Sign([]byte(cfg.JWTSecret), userID, token.TypeRefresh, time.Minute)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id", "expires_at"}).
			AddRow(uuid.New().String(), raw, userID.String(), time.Now().Add(-time.Hour)))
	mock.ExpectExec(`DELETE FROM "refresh_tokens"`).
		WillReturnError(assert.AnError)

	_, err = svc.Refresh(raw)
	assert.ErrorIs(t, err, ErrRefreshTokenExpired)
}

func TestRefreshRotatesStoredToken(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	userID := uuid.New()
	raw, err := token.Sign([]byte(cfg.JWTSecret), userID, token.TypeRefresh, time.Minute)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id", "expires_at"}).
			AddRow(uuid.New().String(), raw, userID.String(), time.Now().Add(time.Hour)))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_active"}).
			AddRow(userID.String(), "user@example.com", true))
	mock.ExpectExec(`UPDATE "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pair, err := svc.Refresh(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, raw, pair.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshLosesGuardedRotationRace(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	userID := uuid.New()
	raw, err := token.Sign([]byte(cfg.JWTSecret), userID, token.TypeRefresh, time.Minute)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id", "expires_at"}).
			AddRow(uuid.New().String(), raw, userID.String(), time.Now().Add(time.Hour)))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_active"}).
			AddRow(userID.String(), "user@example.com", true))
	// A concurrent refresh already rotated the row; the guarded update
	// matches nothing.
	mock.ExpectExec(`UPDATE "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = svc.Refresh(raw)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsInactiveUser(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	userID := uuid.New()
	raw, err := token.Sign([]byte(cfg.JWTSecret), userID, token.TypeRefresh, time.Minute)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id", "expires_at"}).
			AddRow(uuid.New().String(), raw, userID.String(), time.Now().Add(time.Hour)))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_active"}).
			AddRow(userID.String(), "user@example.com", false))

	_, err = svc.Refresh(raw)
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestLogoutIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectExec(`DELETE FROM "refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, svc.Logout("already-gone"))
}

func TestGetProfileUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetProfile(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	userID := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_active"}).
			AddRow(userID.String(), "me@example.com", true))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(uuid.New().String(), "other@example.com"))

	email := "other@example.com"
	_, err := svc.UpdateProfile(userID, &dto.UpdateProfileRequest{Email: &email})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

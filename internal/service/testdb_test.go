package service

import (
	"testing"
	"time"

	"studiohq/internal/database"
	"studiohq/internal/domain"
	"studiohq/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, FullName: "Test Client", Role: domain.RoleClient, HashAlgo: "bcrypt"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// seedSignedWaiver publishes an active waiver and signs it for the users.
func seedSignedWaiver(t *testing.T, db *gorm.DB, userIDs ...uint) {
	t.Helper()
	w := &models.Waiver{Title: "Liability Waiver", Body: "terms", Active: true}
	require.NoError(t, db.Create(w).Error)
	for _, id := range userIDs {
		sig := &models.WaiverSignature{WaiverID: w.ID, UserID: id, SignedAt: time.Now()}
		require.NoError(t, db.Create(sig).Error)
	}
}

func seedSession(t *testing.T, db *gorm.DB, startsIn time.Duration, capacity int) *models.Session {
	t.Helper()
	ct := &models.ClassType{Name: "HIIT", DurationMinutes: 60, DefaultCapacity: capacity, Active: true}
	require.NoError(t, db.Create(ct).Error)
	start := time.Now().Add(startsIn)
	s := &models.Session{
		ClassTypeID: ct.ID,
		StartsAt:    start,
		EndsAt:      start.Add(time.Hour),
		Capacity:    capacity,
		Visible:     true,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedFundedCreditType(t *testing.T, db *gorm.DB, userID uint, name string, balance int) *models.CreditType {
	t.Helper()
	ct := &models.CreditType{Name: name, Active: true}
	require.NoError(t, db.Create(ct).Error)
	if balance > 0 {
		require.NoError(t, db.Create(&models.CreditBalance{UserID: userID, CreditTypeID: ct.ID, Balance: balance}).Error)
		require.NoError(t, db.Create(&models.CreditLedgerEntry{
			UserID: userID, CreditTypeID: ct.ID, Delta: balance, Reason: domain.ReasonAdminAdjust,
		}).Error)
	}
	return ct
}

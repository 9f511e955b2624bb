package database

import (
	"log"
	"time"

	"studiohq/config"
	"studiohq/internal/domain"
	"studiohq/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
		// Duplicate-key violations surface as gorm.ErrDuplicatedKey so the
		// claim-ticket inserts (check-in, reminder, assignments) can treat
		// them as already-exists.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AuthSession{},
		&models.CreditType{},
		&models.CreditLedgerEntry{},
		&models.CreditBalance{},
		&models.ClassType{},
		&models.Session{},
		&models.Booking{},
		&models.BookingCheckin{},
		&models.ReminderSend{},
		&models.RewardsLedgerEntry{},
		&models.Membership{},
		&models.IntakeSubmission{},
		&models.Waiver{},
		&models.WaiverSignature{},
		&models.Exercise{},
		&models.Workout{},
		&models.WorkoutExercise{},
		&models.ClientWorkout{},
	)
}

// SeedAdmin creates the bootstrap admin account if no admin exists yet.
func SeedAdmin(db *gorm.DB, email, password string) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed: hash admin password: %v", err)
		return
	}
	u := &models.User{
		Email:        email,
		FullName:     "Studio Admin",
		PasswordHash: string(hash),
		HashAlgo:     "bcrypt",
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(u).Error; err != nil {
		log.Printf("seed: create admin: %v", err)
		return
	}
	log.Printf("seed: created admin %s", email)
}

// SeedCreditTypes inserts the default credit types when the table is empty.
func SeedCreditTypes(db *gorm.DB) {
	var count int64
	db.Model(&models.CreditType{}).Count(&count)
	if count > 0 {
		return
	}
	for _, name := range []string{"Group Class", "Open Gym", "Personal Training"} {
		if err := db.Create(&models.CreditType{Name: name, Active: true, CreatedAt: time.Now()}).Error; err != nil {
			log.Printf("seed: credit type %q: %v", name, err)
		}
	}
}

package repository

import (
	"time"

	"studiohq/internal/models"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateClassType(ct *models.ClassType) error {
	return r.db.Create(ct).Error
}

func (r *SessionRepository) GetClassType(id uint) (*models.ClassType, error) {
	var ct models.ClassType
	err := r.db.First(&ct, id).Error
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *SessionRepository) ListClassTypes() ([]models.ClassType, error) {
	var list []models.ClassType
	err := r.db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *SessionRepository) UpdateClassType(ct *models.ClassType) error {
	return r.db.Save(ct).Error
}

func (r *SessionRepository) DeleteClassType(id uint) error {
	return r.db.Delete(&models.ClassType{}, id).Error
}

func (r *SessionRepository) CreateSession(s *models.Session) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) GetSession(id uint) (*models.Session, error) {
	var s models.Session
	err := r.db.Preload("ClassType").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) UpdateSession(s *models.Session) error {
	return r.db.Save(s).Error
}

func (r *SessionRepository) DeleteSession(id uint) error {
	return r.db.Delete(&models.Session{}, id).Error
}

func (r *SessionRepository) ListSessions(from, to *time.Time, limit, offset int) ([]models.Session, error) {
	var list []models.Session
	q := r.db.Preload("ClassType").Order("starts_at ASC").Limit(limit).Offset(offset)
	if from != nil {
		q = q.Where("starts_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("starts_at <= ?", *to)
	}
	err := q.Find(&list).Error
	return list, err
}

// ListUpcomingVisible returns client-facing sessions starting after now.
func (r *SessionRepository) ListUpcomingVisible(now time.Time, limit, offset int) ([]models.Session, error) {
	var list []models.Session
	err := r.db.Where("visible = ? AND starts_at > ?", true, now).
		Preload("ClassType").Order("starts_at ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

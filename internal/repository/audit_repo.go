package repository

import (
	"go-jewelry-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository persists finished audits. A report is written exactly
// once, header and lines in one transaction; nothing updates it later.
type AuditRepository interface {
	SaveReport(session *model.AuditSession, lines []model.AuditLine) error
	FindAll() ([]model.AuditSession, error)
	FindByID(id uuid.UUID) (*model.AuditSession, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) SaveReport(session *model.AuditSession, lines []model.AuditLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].SessionID = session.ID
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
}

func (r *auditRepo) FindAll() ([]model.AuditSession, error) {
	var sessions []model.AuditSession
	err := r.db.Order("started_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *auditRepo) FindByID(id uuid.UUID) (*model.AuditSession, error) {
	var session model.AuditSession
	err := r.db.Preload("Lines").First(&session, "id = ?", id).Error
	return &session, err
}

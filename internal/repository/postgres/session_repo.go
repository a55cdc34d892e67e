package postgres

import (
	"context"
	"time"

	"github.com/taletique/tailor-portal/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context, sid string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "sid = ?", sid).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Put(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sid"}},
			DoUpdates: clause.AssignmentColumns([]string{"sess", "expire"}),
		}).
		Create(session).Error
}

func (r *sessionRepository) Delete(ctx context.Context, sid string) error {
	return r.db.WithContext(ctx).Delete(&domain.Session{}, "sid = ?", sid).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expire < ?", now).
		Delete(&domain.Session{})
	return result.RowsAffected, result.Error
}

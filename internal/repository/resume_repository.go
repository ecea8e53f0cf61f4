package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Fatal777/ApplyX-sub001/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrResumeNotFound = errors.New("resume not found")

// ResumeProfile is the matcher-facing projection of a stored resume.
type ResumeProfile struct {
	ResumeID        uuid.UUID
	Keywords        []string
	Skills          []string
	ExperienceYears int
	ExperienceLevel string
}

type ResumeRepository interface {
	FindProfileByID(ctx context.Context, resumeID uuid.UUID) (ResumeProfile, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) FindProfileByID(ctx context.Context, resumeID uuid.UUID) (ResumeProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(keywords, '{}'), COALESCE(skills, '{}'),
		        COALESCE(experience_years, 0), COALESCE(experience_level, '')
		 FROM resumes
		 WHERE id = $1`,
		resumeID,
	)

	var p ResumeProfile
	if err := row.Scan(&p.ResumeID, &p.Keywords, &p.Skills, &p.ExperienceYears, &p.ExperienceLevel); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ResumeProfile{}, ErrResumeNotFound
		}
		return ResumeProfile{}, err
	}
	return p, nil
}

package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mortyverse/Geurim-Lab/internal/model"
)

type userStore struct {
	pool *pgxpool.Pool
}

func newUserStore(pool *pgxpool.Pool) UserStore {
	return &userStore{pool: pool}
}

func (s *userStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	var role string
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, role, is_verified, created_at
		FROM users
		WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &role, &u.IsVerified, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Role = model.Role(role)
	return &u, nil
}

// ListVerifiedMentors recomputes each mentor's open-session count with an
// aggregate instead of trusting a client-maintained counter.
func (s *userStore) ListVerifiedMentors(ctx context.Context) ([]model.MentorSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.name, u.role, u.is_verified, u.created_at,
			COUNT(f.id) FILTER (WHERE f.status <> 'completed') AS open_sessions
		FROM users u
		LEFT JOIN one_on_one_feedbacks f ON f.mentor_id = u.id
		WHERE u.role = 'mentor' AND u.is_verified
		GROUP BY u.id, u.name, u.role, u.is_verified, u.created_at
		ORDER BY u.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mentors []model.MentorSummary
	for rows.Next() {
		var m model.MentorSummary
		var role string
		if err := rows.Scan(&m.ID, &m.Name, &role, &m.IsVerified, &m.CreatedAt, &m.OpenSessions); err != nil {
			return nil, err
		}
		m.Role = model.Role(role)
		mentors = append(mentors, m)
	}
	return mentors, rows.Err()
}

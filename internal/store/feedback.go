package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mortyverse/Geurim-Lab/internal/model"
)

const feedbackColumns = `id, student_id, mentor_id, status,
	step1_content, step1_image_url,
	step2_content, step2_image_url,
	step3_content,
	step4_content, step4_image_url,
	created_at, updated_at`

type feedbackStore struct {
	pool *pgxpool.Pool
}

func newFeedbackStore(pool *pgxpool.Pool) FeedbackStore {
	return &feedbackStore{pool: pool}
}

func (s *feedbackStore) Create(ctx context.Context, sess *model.FeedbackSession) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO one_on_one_feedbacks (id, student_id, mentor_id, status, step1_content, step1_image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+feedbackColumns,
		sess.ID, sess.StudentID, sess.MentorID, string(sess.Status), sess.Step1.Content, sess.Step1.ImageURL,
	)
	created, err := scanFeedback(row)
	if err != nil {
		return err
	}
	*sess = *created
	return nil
}

func (s *feedbackStore) GetByID(ctx context.Context, id int64) (*model.FeedbackSession, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+feedbackColumns+`
		FROM one_on_one_feedbacks
		WHERE id = $1`, id)
	sess, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *feedbackStore) ListByParticipant(ctx context.Context, userID string) ([]model.FeedbackSession, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+feedbackColumns+`
		FROM one_on_one_feedbacks
		WHERE student_id = $1 OR mentor_id = $1
		ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.FeedbackSession
	for rows.Next() {
		sess, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

// AdvanceStep is the single write that moves a session forward. The WHERE
// clause on the expected status makes concurrent submissions race safely:
// at most one UPDATE out of a given status ever matches.
func (s *feedbackStore) AdvanceStep(ctx context.Context, id int64, expected model.FeedbackStatus, step model.Step) (*model.FeedbackSession, error) {
	next, ok := expected.Next()
	if !ok {
		return nil, fmt.Errorf("status %s has no successor", expected)
	}

	var set string
	switch expected.PendingStep() {
	case 2:
		set = "step2_content = $3, step2_image_url = $4"
	case 3:
		set = "step3_content = $3"
	case 4:
		set = "step4_content = $3, step4_image_url = $4"
	default:
		return nil, fmt.Errorf("status %s has no pending step", expected)
	}

	args := []any{id, string(expected), step.Content}
	if expected.PendingStep() != 3 {
		args = append(args, step.ImageURL)
	}
	args = append(args, string(next))
	statusArg := fmt.Sprintf("$%d", len(args))

	row := s.pool.QueryRow(ctx, `
		UPDATE one_on_one_feedbacks
		SET `+set+`, status = `+statusArg+`, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+feedbackColumns, args...)

	sess, err := scanFeedback(row)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Zero rows: either the session is gone or someone else won the race.
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrStaleStatus
}

func scanFeedback(row pgx.Row) (*model.FeedbackSession, error) {
	var (
		sess                        model.FeedbackSession
		status                      string
		step2Content, step2ImageURL *string
		step3Content                *string
		step4Content, step4ImageURL *string
	)
	err := row.Scan(
		&sess.ID, &sess.StudentID, &sess.MentorID, &status,
		&sess.Step1.Content, &sess.Step1.ImageURL,
		&step2Content, &step2ImageURL,
		&step3Content,
		&step4Content, &step4ImageURL,
		&sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sess.Status = model.FeedbackStatus(status)
	sess.Step2 = stepFrom(step2Content, step2ImageURL)
	sess.Step3 = stepFrom(step3Content, nil)
	sess.Step4 = stepFrom(step4Content, step4ImageURL)
	return &sess, nil
}

func stepFrom(content, imageURL *string) model.Step {
	var st model.Step
	if content != nil {
		st.Content = *content
	}
	if imageURL != nil {
		st.ImageURL = *imageURL
	}
	return st
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type quizRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *quizRepo) AppendAttempt(ctx context.Context, data QuizAttemptData) error {
	answers := data.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO quiz_attempts
		(sequence, timestamp_ms, level, topic, total, correct, percentage, band, answers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.Level, data.Topic, data.Total,
		data.Correct, data.Percentage, data.Band, string(answersJSON),
	)
	if err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}
	return nil
}

func (r *quizRepo) RecentAttempts(ctx context.Context, limit int) ([]QuizAttemptRecord, error) {
	query := `SELECT id, sequence, timestamp_ms, level, topic, total, correct, percentage, band, answers
		FROM quiz_attempts ORDER BY sequence DESC` + QueryOpts{Limit: limit}.limitClause()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	defer rows.Close()

	var out []QuizAttemptRecord
	for rows.Next() {
		var (
			a       QuizAttemptRecord
			ts      int64
			answers string
		)
		if err := rows.Scan(&a.ID, &a.Sequence, &ts, &a.Level, &a.Topic, &a.Total,
			&a.Correct, &a.Percentage, &a.Band, &answers); err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		a.Timestamp = time.UnixMilli(ts).UTC()
		if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for attempt %d: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *quizRepo) Summary(ctx context.Context) (QuizSummary, error) {
	sum := QuizSummary{ByLevel: map[string]int{}}

	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(total), 0),
		COALESCE(SUM(correct), 0), COALESCE(MAX(percentage), 0) FROM quiz_attempts`,
	).Scan(&sum.Attempts, &sum.Questions, &sum.Correct, &sum.BestPercentage)
	if err != nil {
		return sum, fmt.Errorf("query quiz summary: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT level, COUNT(*) FROM quiz_attempts GROUP BY level`)
	if err != nil {
		return sum, fmt.Errorf("query attempts by level: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			level string
			n     int
		)
		if err := rows.Scan(&level, &n); err != nil {
			return sum, fmt.Errorf("scan attempts by level: %w", err)
		}
		sum.ByLevel[level] = n
	}
	return sum, rows.Err()
}

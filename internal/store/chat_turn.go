package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type chatRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *chatRepo) AppendTurn(ctx context.Context, data ChatTurnData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO chat_turns
		(sequence, timestamp_ms, message_id, user_text, reply, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.MessageID, data.UserText, data.Reply,
		data.Success, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save chat turn: %w", err)
	}
	return nil
}

func (r *chatRepo) RecentTurns(ctx context.Context, limit int) ([]ChatTurnRecord, error) {
	query := `SELECT id, sequence, timestamp_ms, message_id, user_text, reply, success, error_message
		FROM chat_turns ORDER BY sequence DESC` + QueryOpts{Limit: limit}.limitClause()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query chat turns: %w", err)
	}
	defer rows.Close()

	var out []ChatTurnRecord
	for rows.Next() {
		var (
			t  ChatTurnRecord
			ts int64
		)
		if err := rows.Scan(&t.ID, &t.Sequence, &ts, &t.MessageID, &t.UserText,
			&t.Reply, &t.Success, &t.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan chat turn: %w", err)
		}
		t.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

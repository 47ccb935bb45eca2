package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var tutoringColumns = []string{
	"id", "sequence", "timestamp", "session_id", "lesson_id",
	"kind", "role", "content", "generation", "resolution",
}

func (j *Journal) AppendTutoringEvent(ctx context.Context, data TutoringEventData) error {
	seqNum, err := j.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := j.builder().Insert("tutoring_events").
		Columns("sequence", "timestamp", "session_id", "lesson_id", "kind", "role", "content", "generation", "resolution").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.LessonID, data.Kind, data.Role, data.Content, data.Generation, data.Resolution).
		Query()
	if err := j.exec(ctx, q, args); err != nil {
		return fmt.Errorf("save tutoring event: %w", err)
	}
	return nil
}

// QueryTutoringEvents returns tutoring events, newest first.
func (j *Journal) QueryTutoringEvents(ctx context.Context, opts QueryOpts) ([]TutoringEvent, error) {
	sel := j.builder().Select(tutoringColumns...).From(entsql.Table("tutoring_events"))
	q, args := applyOpts(sel, opts, true).Query()

	rows, err := j.query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("query tutoring events: %w", err)
	}
	defer rows.Close()

	var out []TutoringEvent
	for rows.Next() {
		e, err := scanTutoringEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SessionIDs returns the distinct tutoring sessions, most recent first.
func (j *Journal) SessionIDs(ctx context.Context, limit int) ([]string, error) {
	sel := j.builder().Select("session_id", entsql.As(entsql.Max("sequence"), "last_seq")).
		From(entsql.Table("tutoring_events")).
		GroupBy("session_id").
		OrderBy(entsql.Desc("last_seq"))
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	rows, err := j.query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		var last int64
		if err := rows.Scan(&id, &last); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanTutoringEvent(rows *entsql.Rows) (TutoringEvent, error) {
	var e TutoringEvent
	var ts int64
	err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.LessonID,
		&e.Kind, &e.Role, &e.Content, &e.Generation, &e.Resolution)
	if err != nil {
		return TutoringEvent{}, fmt.Errorf("scan tutoring event: %w", err)
	}
	e.Timestamp = time.UnixMilli(ts)
	return e, nil
}

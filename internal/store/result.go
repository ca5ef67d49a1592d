package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	json "github.com/goccy/go-json"

	"github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/style"
)

// ErrNotCompleted is returned when saving a session that has no result.
var ErrNotCompleted = errors.New("session not completed")

// RoundRecord is one played round as stored in the result log.
type RoundRecord struct {
	Round      int            `json:"round"`
	Left       style.Category `json:"left"`
	Right      style.Category `json:"right"`
	LeftPhoto  string         `json:"left_photo"`
	RightPhoto string         `json:"right_photo"`
	Chosen     style.Category `json:"chosen"`
}

// ResultRecord is a completed quiz in the result log.
type ResultRecord struct {
	ID        int64
	SessionID string
	Result    style.Category
	Reason    quiz.StopReason
	Rounds    int
	Margin    int
	Q1        quiz.AnswerKey
	Q2        quiz.AnswerKey
	Scores    map[style.Category]int
	History   []RoundRecord
	CreatedAt time.Time
}

// ResultStats aggregates the result log.
type ResultStats struct {
	Total     int
	ByResult  map[style.Category]int
	ByReason  map[quiz.StopReason]int
	AvgRounds float64
}

// ResultRepo records completed quizzes.
type ResultRepo interface {
	// Save appends a completed session. Sessions in any other state are
	// rejected with ErrNotCompleted.
	Save(ctx context.Context, sum quiz.Summary) (ResultRecord, error)

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]ResultRecord, error)

	// Stats aggregates every stored result.
	Stats(ctx context.Context) (ResultStats, error)
}

var resultColumns = []string{
	"id", "session_id", "result", "reason", "rounds", "margin",
	"q1", "q2", "scores", "history", "created_at",
}

// resultRepo implements ResultRepo with ent's SQL builders.
type resultRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

func (r *resultRepo) Save(ctx context.Context, sum quiz.Summary) (ResultRecord, error) {
	if sum.State != quiz.StateCompleted {
		return ResultRecord{}, fmt.Errorf("save %s: %w (state %s)", sum.SessionID, ErrNotCompleted, sum.State)
	}

	rec := ResultRecord{
		SessionID: sum.SessionID,
		Result:    sum.Result,
		Reason:    sum.Reason,
		Rounds:    sum.Rounds,
		Margin:    sum.Margin,
		Q1:        sum.Q1,
		Q2:        sum.Q2,
		Scores:    map[style.Category]int(sum.Scores.Clone()),
		History:   historyRecords(sum.History),
		CreatedAt: r.now().UTC().Truncate(time.Millisecond),
	}

	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return ResultRecord{}, fmt.Errorf("marshal scores: %w", err)
	}
	history, err := json.Marshal(rec.History)
	if err != nil {
		return ResultRecord{}, fmt.Errorf("marshal history: %w", err)
	}

	q, args := builder().Insert("quiz_results").
		Columns(resultColumns[1:]...).
		Values(rec.SessionID, string(rec.Result), string(rec.Reason), rec.Rounds, rec.Margin,
			string(rec.Q1), string(rec.Q2), string(scores), string(history), rec.CreatedAt.UnixMilli()).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return ResultRecord{}, fmt.Errorf("insert result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ResultRecord{}, fmt.Errorf("insert result: %w", err)
	}
	rec.ID = id
	return rec, nil
}

func (r *resultRepo) Recent(ctx context.Context, limit int) ([]ResultRecord, error) {
	sel := builder().Select(resultColumns...).
		From(entsql.Table("quiz_results")).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	var out []ResultRecord
	err := query(ctx, r.drv, q, args, func(rows *entsql.Rows) error {
		var (
			rec                    ResultRecord
			result, reason, q1, q2 string
			scores, history        string
			createdAt              int64
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &result, &reason, &rec.Rounds, &rec.Margin,
			&q1, &q2, &scores, &history, &createdAt); err != nil {
			return err
		}
		rec.Result = style.Category(result)
		rec.Reason = quiz.StopReason(reason)
		rec.Q1 = quiz.AnswerKey(q1)
		rec.Q2 = quiz.AnswerKey(q2)
		rec.CreatedAt = time.UnixMilli(createdAt).UTC()
		if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
			return fmt.Errorf("decode scores of %s: %w", rec.SessionID, err)
		}
		if err := json.Unmarshal([]byte(history), &rec.History); err != nil {
			return fmt.Errorf("decode history of %s: %w", rec.SessionID, err)
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return out, nil
}

func (r *resultRepo) Stats(ctx context.Context) (ResultStats, error) {
	q, args := builder().Select("result", "reason", entsql.Count("*"), entsql.Sum("rounds")).
		From(entsql.Table("quiz_results")).
		GroupBy("result", "reason").
		Query()

	stats := ResultStats{
		ByResult: make(map[style.Category]int),
		ByReason: make(map[quiz.StopReason]int),
	}
	var rounds int
	err := query(ctx, r.drv, q, args, func(rows *entsql.Rows) error {
		var (
			result, reason string
			n, sum         int
		)
		if err := rows.Scan(&result, &reason, &n, &sum); err != nil {
			return err
		}
		stats.Total += n
		stats.ByResult[style.Category(result)] += n
		stats.ByReason[quiz.StopReason(reason)] += n
		rounds += sum
		return nil
	})
	if err != nil {
		return ResultStats{}, fmt.Errorf("query result stats: %w", err)
	}
	if stats.Total > 0 {
		stats.AvgRounds = float64(rounds) / float64(stats.Total)
	}
	return stats, nil
}

func historyRecords(history []quiz.RoundOutcome) []RoundRecord {
	out := make([]RoundRecord, 0, len(history))
	for _, o := range history {
		out = append(out, RoundRecord{
			Round:      o.Round.Number,
			Left:       o.Round.Left.Category,
			Right:      o.Round.Right.Category,
			LeftPhoto:  o.Round.Left.Photo.ID,
			RightPhoto: o.Round.Right.Photo.ID,
			Chosen:     o.Winner(),
		})
	}
	return out
}

package coverage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"orderhistory/internal/coverage/db"
	"orderhistory/internal/order"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("orderhistory/internal/coverage")

// Store keeps rule hit counts across extractions so that rule order can be
// revisited with evidence. It implements extract.ReportSink.
type Store struct {
	qry    *db.Queries
	makeTx db.MakeTx
	now    func() time.Time
}

func NewStore(database *sql.DB) *Store {
	return &Store{
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
		now:    time.Now,
	}
}

// FieldSummary counts how often a field of a kind resolved.
type FieldSummary struct {
	Kind       order.Kind
	Field      order.Field
	Resolved   int64
	Unresolved int64
}

func (s FieldSummary) HitRate() float64 {
	total := s.Resolved + s.Unresolved
	if total == 0 {
		return 0
	}
	return float64(s.Resolved) / float64(total)
}

// RuleRanking is how often one rule won its field.
type RuleRanking struct {
	Kind     order.Kind
	Rule     int
	RuleName string
	Hits     int64
}

// ExtractionCount is the number of recorded extractions with one outcome.
type ExtractionCount struct {
	Kind   order.Kind
	Reason order.Reason
	Count  int64
}

// Record stores the outcome of one extraction and, when it produced an order,
// the rule that won each of its fields. Pages without an order only count as
// an extraction, so a no-match never inflates a rule's hits.
func (s *Store) Record(ctx context.Context, result order.Result) error {
	ctx, span := tracer.Start(ctx, "Record")
	defer span.End()

	err := s.record(ctx, result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *Store) record(ctx context.Context, result order.Result) error {
	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	kind := order.KindUnknown
	var orderID string
	if result.Report != nil {
		kind = result.Report.Kind
	}
	if result.Order != nil {
		kind = result.Order.Kind
		orderID = result.Order.ID
	}

	err = txqry.CreateExtraction(ctx, db.CreateExtractionParams{
		OrderID:    orderID,
		Kind:       kind.String(),
		Reason:     string(result.Reason),
		Coverage:   result.Report.Coverage(),
		RecordedAt: s.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("record extraction: %w", err)
	}

	if result.Order != nil && result.Report != nil {
		statuses := append([]order.FieldStatus(nil), result.Report.Fields...)
		for _, item := range result.Report.Items {
			statuses = append(statuses, item.Fields...)
		}
		for _, status := range statuses {
			err = txqry.AddRuleHit(ctx, db.AddRuleHitParams{
				Kind:     kind.String(),
				Field:    string(status.Field),
				Rule:     int64(status.Rule),
				RuleName: status.RuleName,
			})
			if err != nil {
				return fmt.Errorf("record %s hit: %w", status.Field, err)
			}
		}
	}

	return commit()
}

// Summary lists resolved and unresolved counts for every field seen so far,
// ordered by kind then field.
func (s *Store) Summary(ctx context.Context) ([]FieldSummary, error) {
	ctx, span := tracer.Start(ctx, "Summary")
	defer span.End()

	rows, err := s.qry.GetFieldSummary(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]FieldSummary, 0, len(rows))
	for _, r := range rows {
		kind, err := order.ParseKind(r.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, FieldSummary{
			Kind:       kind,
			Field:      order.Field(r.Field),
			Resolved:   r.Resolved,
			Unresolved: r.Unresolved,
		})
	}
	return out, nil
}

// Ranking lists the rules that resolved field, most hits first within each
// kind.
func (s *Store) Ranking(ctx context.Context, field order.Field) ([]RuleRanking, error) {
	ctx, span := tracer.Start(ctx, "Ranking")
	defer span.End()
	span.SetAttributes(attribute.String("field", string(field)))

	rows, err := s.qry.GetRuleRanking(ctx, string(field))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]RuleRanking, 0, len(rows))
	for _, r := range rows {
		kind, err := order.ParseKind(r.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, RuleRanking{
			Kind:     kind,
			Rule:     int(r.Rule),
			RuleName: r.RuleName,
			Hits:     r.Hits,
		})
	}
	return out, nil
}

func (s *Store) Extractions(ctx context.Context) ([]ExtractionCount, error) {
	rows, err := s.qry.GetExtractionCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ExtractionCount, 0, len(rows))
	for _, r := range rows {
		kind, err := order.ParseKind(r.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, ExtractionCount{
			Kind:   kind,
			Reason: order.Reason(r.Reason),
			Count:  r.Count,
		})
	}
	return out, nil
}

// Prune drops extraction records older than before, rule hit counts are
// kept.
func (s *Store) Prune(ctx context.Context, before time.Time) error {
	return s.qry.DeleteExtractionsBefore(ctx, before.Unix())
}

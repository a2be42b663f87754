package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("orderhistory/internal/rules")

var ErrUnparseable = errors.New("markup is not an html document")

// ParseDocument builds a queryable document from page markup. Markup that is
// blank, carries no tags at all, or contains NUL bytes is rejected, the html
// parser would otherwise happily wrap it into an empty page.
func ParseDocument(ctx context.Context, markup string) (*goquery.Document, error) {
	_, span := tracer.Start(ctx, "ParseDocument")
	defer span.End()
	span.SetAttributes(attribute.Int("markup_bytes", len(markup)))

	if strings.TrimSpace(markup) == "" ||
		!strings.Contains(markup, "<") ||
		strings.ContainsRune(markup, 0) {
		span.SetStatus(codes.Error, "unparseable markup")
		return nil, ErrUnparseable
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse markup")
		return nil, fmt.Errorf("%w: %w", ErrUnparseable, err)
	}
	return doc, nil
}

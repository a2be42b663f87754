package extract

import (
	"context"

	"orderhistory/internal/order"
	"orderhistory/internal/rules"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ExtractHeaders lists the orders of an order history page. Cards whose
// order id cannot be resolved are skipped. The only error is unparseable
// markup, a page with no order cards yields an empty list.
func (e *Engine) ExtractHeaders(ctx context.Context, markup string) ([]order.Header, error) {
	ctx, span := tracer.Start(ctx, "ExtractHeaders")
	defer span.End()

	doc, err := rules.ParseDocument(ctx, markup)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse order history page")
		return nil, err
	}

	schema := e.catalog.Headers()
	cards := rules.LocateBlocks(e.api, schema.Cards, doc.Selection)

	headers := []order.Header{}
	for _, card := range cards.Items {
		var h order.Header
		id := resolveValue(e.api, schema.ID, order.FieldID, card, &h.ID)
		if !id.Resolved {
			e.api.ReportWarning("engine.extract-headers", "order card without id", cards.RuleName)
			continue
		}
		resolveOptional(e.api, schema.Date, order.FieldDate, card, &h.Date)
		resolveOptional(e.api, schema.Total, order.FieldTotal, card, &h.Total)
		resolveValue(e.api, schema.Recipient, order.FieldRecipient, card, &h.Recipient)
		resolveValue(e.api, schema.DetailURL, order.FieldDetailURL, card, &h.DetailURL)
		headers = append(headers, h)
	}

	span.SetAttributes(
		attribute.String("card_rule", cards.RuleName),
		attribute.Int("headers", len(headers)),
	)
	return headers, nil
}

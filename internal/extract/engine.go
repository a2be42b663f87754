package extract

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"orderhistory/internal/catalog"
	"orderhistory/internal/money"
	"orderhistory/internal/order"
	"orderhistory/internal/rules"
	"orderhistory/internal/telemetry"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("orderhistory/internal/extract")
var meter = otel.Meter("orderhistory/internal/extract")

var fieldResolutionCounter, _ = meter.Int64Counter(
	"extract.field_resolution",
	metric.WithDescription("Field resolution attempts by field, kind, outcome and winning rule."),
)

const report_engine_sink = "engine.sink"

// ReportSink observes every Result the engine returns, it is how coverage
// is recorded without the engine knowing about storage.
type ReportSink interface {
	Record(ctx context.Context, result order.Result) error
}

type Options struct {
	// BaseURL is the storefront origin, like https://www.amazon.co.uk.
	BaseURL string
	// DollarCurrency is the ISO code a bare "$" stands for on this
	// storefront. Dollar amounts stay unresolved when it is empty.
	DollarCurrency string
	Telemetry      telemetry.API
	Sink           ReportSink
}

// Engine extracts orders from order page markup. It holds no per-call state
// and is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	api     telemetry.API
	sink    ReportSink
}

// CatalogOptions turns engine options into the inputs of catalog.New.
func CatalogOptions(opts Options) (catalog.Options, error) {
	var out catalog.Options

	parser, err := money.NewParser(opts.DollarCurrency)
	if err != nil {
		return out, err
	}
	out.Money = parser

	if opts.BaseURL != "" {
		base, err := url.Parse(opts.BaseURL)
		if err != nil {
			return out, fmt.Errorf("base url %q: %w", opts.BaseURL, err)
		}
		if base.Scheme == "" || base.Host == "" {
			return out, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
		}
		out.BaseURL = base
	}
	return out, nil
}

func NewEngine(opts Options) (*Engine, error) {
	catalogOpts, err := CatalogOptions(opts)
	if err != nil {
		return nil, err
	}
	return NewEngineWithCatalog(catalog.New(catalogOpts), opts), nil
}

// NewEngineWithCatalog uses cat instead of the built in catalog, the
// storefront fields of opts are ignored.
func NewEngineWithCatalog(cat *catalog.Catalog, opts Options) *Engine {
	api := opts.Telemetry
	if api == nil {
		api = telemetry.SlogAPI{}
	}
	return &Engine{
		catalog: cat,
		api:     telemetry.NewScopedAPI("extract", api),
		sink:    opts.Sink,
	}
}

// Extract returns the order on one page. hint is the kind the caller expects,
// it is tried first and accepted if it yields an order. Otherwise every kind
// is tried and the candidate with the most resolved fields wins, ties going
// to the earlier candidate.
func (e *Engine) Extract(ctx context.Context, markup string, hint order.Kind) order.Result {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(attribute.String("hint", hint.String()))

	result := e.extract(ctx, markup, hint)

	span.SetAttributes(attribute.String("reason", string(result.Reason)))
	if result.Order != nil {
		span.SetAttributes(
			attribute.String("order_id", result.Order.ID),
			attribute.String("kind", result.Order.Kind.String()),
			attribute.Int("items", len(result.Order.Items)),
		)
	}
	if result.Reason == order.ReasonParseFailure {
		span.SetStatus(codes.Error, string(result.Reason))
	}

	e.observe(ctx, result)
	return result
}

func (e *Engine) extract(ctx context.Context, markup string, hint order.Kind) order.Result {
	doc, err := rules.ParseDocument(ctx, markup)
	if err != nil {
		e.api.ReportDebug("engine: parse failure", err.Error())
		return order.Result{Reason: order.ReasonParseFailure}
	}

	var attempts []attempt

	_, hinted := e.catalog.Schema(hint)
	if hinted {
		first := e.assemble(ctx, hint, doc.Selection)
		if first.order != nil {
			return order.Result{Order: first.order, Report: first.report}
		}
		attempts = append(attempts, first)
	}
	for _, kind := range e.catalog.Kinds() {
		if hinted && kind == hint {
			continue
		}
		attempts = append(attempts, e.assemble(ctx, kind, doc.Selection))
	}

	return pick(attempts)
}

func (e *Engine) assemble(ctx context.Context, kind order.Kind, root *goquery.Selection) attempt {
	schema, _ := e.catalog.Schema(kind)
	return newAssembler(e.api, schema, root).run(ctx)
}

// pick returns the successful attempt with the most resolved fields. When no
// attempt succeeded, the report of the first attempt that at least
// identified its kind explains the failure.
func pick(attempts []attempt) order.Result {
	var best *attempt
	for i := range attempts {
		a := &attempts[i]
		if a.order == nil {
			continue
		}
		if best == nil || a.report.ResolvedCount() > best.report.ResolvedCount() {
			best = a
		}
	}
	if best != nil {
		return order.Result{Order: best.order, Report: best.report}
	}

	result := order.Result{Reason: order.ReasonNotOrderPage}
	for _, a := range attempts {
		if a.report != nil && a.report.KindRule != "" {
			result.Report = a.report
			return result
		}
	}
	if len(attempts) > 0 {
		result.Report = attempts[0].report
	}
	return result
}

func (e *Engine) observe(ctx context.Context, result order.Result) {
	if result.Report != nil && fieldResolutionCounter != nil {
		kind := attribute.String("kind", result.Report.Kind.String())
		record := func(s order.FieldStatus) {
			fieldResolutionCounter.Add(ctx, 1, metric.WithAttributes(
				kind,
				attribute.String("field", string(s.Field)),
				attribute.Bool("resolved", s.Resolved),
				attribute.String("rule", strconv.Itoa(s.Rule)),
			))
		}
		for _, s := range result.Report.Fields {
			record(s)
		}
		for _, item := range result.Report.Items {
			for _, s := range item.Fields {
				record(s)
			}
		}
	}

	if e.sink == nil {
		return
	}
	err := e.sink.Record(ctx, result)
	if err != nil {
		e.api.ReportBroken(report_engine_sink, err)
	}
}

package repositories

import (
	"context"
	"errors"
	"strings"

	"budget-server/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("budget-server.repositories")

func startSpan(ctx context.Context, database db.Database, operation, table string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "db."+operation+" "+table, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(
		attribute.String("db.system", database.GetDB().Dialector.Name()),
		attribute.String("db.operation", operation),
		attribute.String("db.sql.table", table),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// translate maps gorm's translated driver errors onto repository errors.
// SQLite constraint errors are also matched by message.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return errors.Join(ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		return errors.Join(ErrUnknownOwner, err)
	default:
		return err
	}
}

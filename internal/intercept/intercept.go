// Package intercept logs every call that crosses the handler, service and store
// boundaries. Each boundary is wrapped explicitly when the application is wired.
//
// Entry is logged at info. On exit a successful result (a present value, a non-empty
// sequence, an outcome other than NotFound, a 2xx status) is logged at info, an absent
// or NotFound result at warn, and a returned error or panic at error. Results and
// errors pass through untouched and panics are re-raised.
package intercept

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

const instrumentationName = "github.com/cloud-wave-best-zizon/product-inventory/internal/intercept"

type boundaryKey string

// enter marks ctx as being inside boundary and reports whether it already was.
func enter(ctx context.Context, boundary string) (context.Context, bool) {
	key := boundaryKey(boundary)
	if ctx.Value(key) != nil {
		return ctx, true
	}
	return context.WithValue(ctx, key, struct{}{}), false
}

type interceptor struct {
	logger *zap.Logger
	tracer trace.Tracer
}

func newInterceptor(logger *zap.Logger) *interceptor {
	return &interceptor{
		logger: logger,
		tracer: otel.Tracer(instrumentationName),
	}
}

// call runs fn as operation on boundary. classify reports whether the result is on
// the success path and, when it is not, describes what came back instead.
func call[T any](ctx context.Context, i *interceptor, boundary, operation string, classify func(T) (ok bool, shape string), fn func(context.Context) (T, error), fields ...zap.Field) (result T, err error) {
	ctx, nested := enter(ctx, boundary)
	if nested {
		return fn(ctx)
	}

	name := boundary + "." + operation
	ctx, span := i.tracer.Start(ctx, name)
	defer span.End()

	i.logger.Info("Entering "+name, fields...)

	defer func() {
		if r := recover(); r != nil {
			i.logger.Error("Exiting "+name+" with panic",
				append(fields,
					zap.String("kind", string(domain.FailurePanic)),
					zap.String("message", fmt.Sprint(r)))...)
			span.SetStatus(codes.Error, "panic")
			panic(r)
		}
	}()

	result, err = fn(ctx)
	if err != nil {
		i.logger.Error("Exiting "+name+" with error",
			append(fields,
				zap.String("kind", string(domain.ClassifyFailure(err))),
				zap.String("message", err.Error()))...)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	if ok, shape := classify(result); !ok {
		i.logger.Warn("Exiting "+name+" with "+shape, fields...)
		return result, nil
	}

	i.logger.Info("Exiting "+name+" after successful execution", fields...)
	return result, nil
}

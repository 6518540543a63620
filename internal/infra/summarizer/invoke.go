package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"newsbrief/internal/observability/metrics"
	"newsbrief/internal/observability/tracing"
	"newsbrief/internal/resilience/circuitbreaker"
	"newsbrief/internal/utils/text"
)

const upstreamOperation = "chat-completion"

// completeFunc performs one provider call for prompt and returns the raw
// first-choice text ("" when the provider returned none).
type completeFunc func(ctx context.Context, prompt string) (string, error)

// invoker holds what every provider shares around its API call.
type invoker struct {
	provider       string
	upstream       string
	timeout        time.Duration
	circuitBreaker *circuitbreaker.CircuitBreaker
	metrics        MetricsRecorder
}

func (inv *invoker) summarize(ctx context.Context, content string, complete completeFunc) (summary string, err error) {
	ctx, span := tracing.StartSpan(ctx, "summarizer.summarize",
		attribute.String("summarizer.provider", inv.provider))
	defer func() {
		if errors.Is(err, ErrEmptyResponse) {
			tracing.EndWithError(span, nil)
			return
		}
		tracing.EndWithError(span, err)
	}()

	if inv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.timeout)
		defer cancel()
	}

	requestID := uuid.New().String()
	input := clampInput(ctx, inv.provider, content)

	slog.InfoContext(ctx, "starting summarization",
		slog.String("request_id", requestID),
		slog.String("provider", inv.provider),
		slog.Int("input_length", text.CountRunes(input)))

	start := time.Now()
	raw, err := circuitbreaker.Do(inv.circuitBreaker, func() (string, error) {
		out, err := complete(ctx, BuildPrompt(input))
		if err != nil && errors.Is(ctx.Err(), context.Canceled) && !errors.Is(err, context.Canceled) {
			// SDK errors do not always wrap the context error
			err = fmt.Errorf("%w: %w", err, context.Canceled)
		}
		return out, err
	})
	duration := time.Since(start)
	inv.metrics.RecordDuration(inv.provider, duration)

	if err != nil {
		if circuitbreaker.IsRejected(err) {
			slog.WarnContext(ctx, "summarizer circuit breaker open, request rejected",
				slog.String("request_id", requestID),
				slog.String("service", inv.upstream),
				slog.String("state", inv.circuitBreaker.State().String()))
			inv.record(outcomeRejected, metrics.OutcomeRejected, duration)
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		slog.ErrorContext(ctx, "summarization failed",
			slog.String("request_id", requestID),
			slog.String("provider", inv.provider),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		inv.record(outcomeError, metrics.OutcomeError, duration)
		return "", fmt.Errorf("%s api error: %w", inv.provider, err)
	}

	summary = strings.TrimSpace(raw)
	if summary == "" {
		slog.WarnContext(ctx, "provider returned no summary text",
			slog.String("request_id", requestID),
			slog.String("provider", inv.provider),
			slog.Duration("duration", duration))
		inv.record(outcomeEmpty, metrics.OutcomeEmpty, duration)
		return "", ErrEmptyResponse
	}

	length := text.CountRunes(summary)
	slog.InfoContext(ctx, "summarization completed",
		slog.String("request_id", requestID),
		slog.String("provider", inv.provider),
		slog.Int("summary_length", length),
		slog.Duration("duration", duration))

	inv.metrics.RecordLength(inv.provider, length)
	inv.record(outcomeSuccess, metrics.OutcomeSuccess, duration)
	span.SetAttributes(attribute.Int("summarizer.summary_length", length))

	return summary, nil
}

func (inv *invoker) record(outcome, upstreamOutcome string, duration time.Duration) {
	inv.metrics.RecordOutcome(inv.provider, outcome)
	metrics.RecordUpstream(inv.upstream, upstreamOperation, upstreamOutcome, duration)
}

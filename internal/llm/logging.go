package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider is a decorator that records every model request.
type LoggingProvider struct {
	inner  Provider
	logger *zap.Logger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, logger *zap.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("model", l.inner.ModelID()),
		zap.String("purpose", PurposeFrom(ctx)),
		zap.Duration("latency", time.Since(start)),
		zap.Int("history_len", len(req.Messages)),
	}
	if resp != nil {
		fields = append(fields,
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
	}

	if err != nil {
		l.logger.Warn("model request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("model request", fields...)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// LoggingImageProvider records image generation calls.
type LoggingImageProvider struct {
	inner  ImageProvider
	logger *zap.Logger
}

// WithImageLogging wraps an ImageProvider with request logging.
func WithImageLogging(p ImageProvider, logger *zap.Logger) ImageProvider {
	return &LoggingImageProvider{inner: p, logger: logger}
}

func (l *LoggingImageProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	start := time.Now()

	resp, err := l.inner.GenerateImage(ctx, req)

	fields := []zap.Field{
		zap.String("purpose", PurposeFrom(ctx)),
		zap.Duration("latency", time.Since(start)),
	}
	if resp != nil {
		fields = append(fields, zap.Int("bytes", len(resp.Data)))
	}

	if err != nil {
		l.logger.Warn("image request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("image request", fields...)
	}

	return resp, err
}

// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped values stored in context.Context into every record.
//
// New picks a text or JSON handler based on the configured Format and wraps it
// with LogHandlerDecorator, which runs the registered ContextExtractor
// callbacks before delegating to the underlying handler.
//
// Attribute helpers in attr.go keep key names consistent: Error, ErrorName,
// ErrorClass, Status, Param, RequestID and Component.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "apidemo"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "request error",
//		logger.ErrorName("not_found"),
//		logger.Status(http.StatusNotFound),
//	)
//
// Error, ErrorName and RequestID return an empty Attr for zero values, so
// callers do not need nil checks.
package logger

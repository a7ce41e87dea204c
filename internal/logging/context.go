package logging

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

type contextKey struct{}

var logDataKey = contextKey{}

// WithLogData returns a context carrying the given LogData.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataKey, logData)
}

// GetLogData returns the request-scoped LogData, or nil when the request did
// not pass through RequestLogger.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(logDataKey).(*LogData)
	return logData
}

// RequestLogger creates one LogData per request, tags it with a request id,
// and logs completion with all accumulated fields and timings.
func RequestLogger(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)

		requestID, err := uuid.NewV4()
		if err == nil {
			logData.AddData("requestID", requestID.String())
		}
		logData.AddData("path", req.URL.Path)
		logData.AddData("method", req.Method)

		endTimer := logData.AddTiming("durationMs")
		next.ServeHTTP(w, req.WithContext(WithLogData(req.Context(), logData)))
		endTimer()

		logData.Log().Info("Request.Complete")
	})
}

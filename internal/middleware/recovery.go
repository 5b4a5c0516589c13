package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

const errorPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Server Error</title></head>
<body>
<h1>Something went wrong</h1>
<p>Sorry, an unexpected error occurred. Please try again.</p>
<p><a href="/">Return home</a></p>
</body>
</html>`

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				slog.Error("panic recovered", "error", fmt.Sprintf("%v", recovered), "stack", string(debug.Stack()))
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(errorPage))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// LogApi writes one access log line per request, including the caller id when
// the request was authenticated.
func LogApi() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		user := "-"
		if id, ok := param.Keys["user_id"]; ok {
			user = fmt.Sprint(id)
		}
		return fmt.Sprintf("[%s] | %s | %d | %s | %s | user=%s | %s | %s | %s\n",
			param.TimeStamp.Format("2006-01-02 15:04:05"),
			param.ClientIP,
			param.StatusCode,
			param.Method,
			param.Path,
			user,
			param.ErrorMessage,
			param.Latency,
			param.Request.Proto,
		)
	})
}

package middleware

import (
	"net/http"

	"github.com/dfryer1193/postboard/api"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandlePanics logs a recovered panic and answers with a 500.
func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")

		if err, ok := recovered.(error); ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.Error{Error: err.Error()})
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam разбирает числовой параметр пути paramName и кладет его
// в контекст запроса под ключом contextKey как uint. Нечисловое или нулевое
// значение обрывает цепочку с кодом 400 — обработчики за этим middleware
// читают ключ через MustGet без повторных проверок.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := strconv.ParseUint(c.Param(paramName), 10, 32)
		if err != nil || value == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
			return
		}
		c.Set(contextKey, uint(value))
		c.Next()
	}
}

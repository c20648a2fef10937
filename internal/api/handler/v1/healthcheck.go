package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

package handlers

import (
	"net/http"

	"reservo/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	state := "ok"
	if (status.Mongo != nil && !*status.Mongo) || (status.Redis != nil && !*status.Redis) {
		state = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": state, "dependencies": status})
}

package api

import "github.com/gin-gonic/gin"

// The API wraps every body in a status envelope: "success" with a data
// payload, "fail" for client errors, "error" for server faults.

func respondSuccess(c *gin.Context, code int, data gin.H) {
	body := gin.H{"status": "success"}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(code, body)
}

// respondList wraps a collection payload and its element count.
func respondList(c *gin.Context, code int, key string, items interface{}, results int) {
	c.JSON(code, gin.H{
		"status":  "success",
		"results": results,
		"data":    gin.H{key: items},
	})
}

func respondData(c *gin.Context, code int, data gin.H) {
	c.JSON(code, gin.H{
		"status": "success",
		"data":   data,
	})
}

// abortWithFail reports a client error (4xx) and stops the chain.
func abortWithFail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"status": "fail", "message": message})
}

// abortWithError reports a server fault (5xx) and stops the chain.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"status": "error", "message": message})
}

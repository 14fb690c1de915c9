package node

import "github.com/gin-gonic/gin"

type IHandler interface {
	Status(c *gin.Context)
	Balance(c *gin.Context)
	Txs(c *gin.Context)
	Ping(c *gin.Context)
}

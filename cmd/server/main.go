package main

import (
	"github.com/dwarvesf/node-dashboard/internal/server"
)

// @title Node Dashboard API
// @version 1.0
// @description Read-only JSON gateway in front of a bitcoin node's JSON-RPC interface.
// @BasePath /
func main() {
	server.Init()
}

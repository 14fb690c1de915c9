package main

import (
	"github.com/dwarvesf/node-dashboard/internal/server"
)

func main() {
	server.InitDashboard()
}

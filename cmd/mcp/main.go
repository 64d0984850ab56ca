package main

import (
	"fmt"
	"os"

	"github.com/elC0mpa/cost-advisor/cmd/mcp/tools"
	"github.com/mark3labs/mcp-go/server"

	// Provider registrations.
	_ "github.com/elC0mpa/cost-advisor/service/providers/azure"
	_ "github.com/elC0mpa/cost-advisor/service/providers/ce"
	_ "github.com/elC0mpa/cost-advisor/service/providers/co"
	_ "github.com/elC0mpa/cost-advisor/service/providers/cur"
	_ "github.com/elC0mpa/cost-advisor/service/providers/ec2"
	_ "github.com/elC0mpa/cost-advisor/service/providers/gcp"
	_ "github.com/elC0mpa/cost-advisor/service/providers/ta"
)

func main() {
	s := server.NewMCPServer(
		"cost-advisor-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterEngineTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

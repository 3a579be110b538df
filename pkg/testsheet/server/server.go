// Package server exposes the test sheet service as MCP tools.
package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ukaji3/testsheet-go/pkg/testsheet"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates an MCP server with every test sheet tool registered.
func New(svc *testsheet.Service, name string) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	for _, t := range NewTools(svc).Definitions() {
		s.AddTool(t.Tool, t.Handler)
	}
	return s
}

// Definition pairs a tool with its handler.
type Definition struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

const instructions = `Manages software test plans kept in Excel workbooks.
Create or open a workbook under an id of your choice, add test cases to the
"SW Validation Testing" sheet (or the integration and unit testing sheets of
a template), update or list them, fill in the testing details block and save
the workbook to a .xlsx file. Workbooks live in memory until saved.`

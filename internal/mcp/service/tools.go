package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/tempo/internal/mcp/domain"
	timerservice "github.com/louisbranch/tempo/internal/timer/service"
)

func registerTimerTools(mcpServer *mcp.Server, svc *timerservice.Service, ownerID string) {
	mcp.AddTool(mcpServer, domain.TimerCreateTool(), domain.TimerCreateHandler(svc, ownerID))
	mcp.AddTool(mcpServer, domain.TimerImportTool(), domain.TimerImportHandler(svc, ownerID))
	mcp.AddTool(mcpServer, domain.TimerExportTool(), domain.TimerExportHandler(svc, ownerID))
}

// registerTimerResources registers readable timer MCP resources.
func registerTimerResources(mcpServer *mcp.Server, svc *timerservice.Service, ownerID string) {
	mcpServer.AddResource(domain.TimerListResource(), domain.TimerListResourceHandler(svc, ownerID))
}

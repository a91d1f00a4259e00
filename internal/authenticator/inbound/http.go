package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/authmigrate/internal/pkg/router"
)

const defaultHeartbeat = 25 * time.Second

func RegisterHTTPEndpoint(r *router.Router, uc uc, heartbeat time.Duration) {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	end := &HTTPEndpoint{uc: uc, heartbeat: heartbeat}

	r.POST("/api/v1/authenticator/import", end.ImportMigration)
	r.GET("/api/v1/authenticator/export", end.ExportMigration)

	r.GET("/api/v1/authenticator/accounts", end.ListAccounts)
	r.GET("/api/v1/authenticator/accounts/:order/code", end.GenerateCode)
	r.POST("/api/v1/authenticator/accounts/:order/next", end.NextCode)

	r.GETRaw("/api/v1/authenticator/stream", http.HandlerFunc(end.StreamCodes))
}

package monitor

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"document-review-api/config"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// RegisterMonitorPage mounts a lightweight ops status endpoint plus a tiny
// HTML view of it. Both report process uptime, memory and DB reachability.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor/status", monitorStatus)
	router.GET("/monitor", monitorPage)
}

func monitorStatus(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	dbStatus := "ok"
	if config.DB == nil {
		dbStatus = "not initialized"
	} else if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	hostname, _ := os.Hostname()
	c.JSON(http.StatusOK, gin.H{
		"hostname":       hostname,
		"uptime_seconds": int(time.Since(startedAt).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"heap_alloc_mb":  mem.HeapAlloc / 1024 / 1024,
		"database":       dbStatus,
		"go_version":     runtime.Version(),
	})
}

func monitorPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Review API Monitor</title>
  <style>
    body { font-family: sans-serif; background: #111; color: #ddd; padding: 2rem; }
    pre { background: #1c1c2b; padding: 1rem; border-radius: 8px; }
  </style>
</head>
<body>
  <h1>Review API Monitor</h1>
  <pre id="status">loading...</pre>
  <script>
    async function refresh() {
      const res = await fetch('/monitor/status');
      document.getElementById('status').textContent = JSON.stringify(await res.json(), null, 2);
    }
    refresh();
    setInterval(refresh, 5000);
  </script>
</body>
</html>`))
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"domainpilot/internal/provisioning"
	"domainpilot/internal/proxyman"
	"domainpilot/internal/services"
)

func RegisterRoutes(e *echo.Echo, api *echo.Group, orch *provisioning.Orchestrator, dnsSvc *services.DNSService, proxySvc *services.ProxyCheckService, sshSvc *services.SSHCheckService, npm *proxyman.Client) {
	ph := &ProvisionHandler{orch: orch, dnsSvc: dnsSvc}
	ah := &AccountHandler{}
	ih := &InfraHandler{proxySvc: proxySvc, sshSvc: sshSvc, npm: npm}

	e.GET("/", func(c echo.Context) error {
		return c.Render(http.StatusOK, "dashboard.html", nil)
	})

	api.POST("/provision", ph.Enqueue)
	api.GET("/provision/queue", ph.Queue)
	api.POST("/provision/cancel", ph.Cancel)
	api.POST("/provision/reset", ph.Reset)
	api.POST("/provision/retry", ph.Retry)
	api.GET("/provision/verify/:domain", ph.VerifyNS)

	api.GET("/accounts", ah.ListAccounts)
	api.POST("/accounts", ah.CreateAccount)
	api.DELETE("/accounts/:id", ah.DeleteAccount)
	api.GET("/registrars", ah.ListRegistrarAccounts)
	api.POST("/registrars", ah.CreateRegistrarAccount)
	api.DELETE("/registrars/:id", ah.DeleteRegistrarAccount)

	api.GET("/proxies", ih.ListProxies)
	api.POST("/proxies", ih.CreateProxy)
	api.DELETE("/proxies/:id", ih.DeleteProxy)
	api.POST("/proxies/:id/check", ih.CheckProxy)

	api.GET("/sshhosts", ih.ListSSHHosts)
	api.POST("/sshhosts", ih.CreateSSHHost)
	api.DELETE("/sshhosts/:id", ih.DeleteSSHHost)
	api.POST("/sshhosts/:id/check", ih.CheckSSHHost)

	api.GET("/proxyhosts", ih.ListProxyHosts)
	api.POST("/proxyhosts", ih.CreateProxyHost)
	api.DELETE("/proxyhosts/:id", ih.DeleteProxyHost)

	api.GET("/domains", ih.ListDomains)
}

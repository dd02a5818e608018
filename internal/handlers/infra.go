package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"domainpilot/internal/database"
	"domainpilot/internal/models"
	"domainpilot/internal/proxyman"
	"domainpilot/internal/services"
)

type InfraHandler struct {
	proxySvc *services.ProxyCheckService
	sshSvc   *services.SSHCheckService
	npm      *proxyman.Client
}

func (h *InfraHandler) ListProxies(c echo.Context) error {
	var proxies []models.Proxy
	if err := database.DB.Find(&proxies).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, proxies)
}

func (h *InfraHandler) CreateProxy(c echo.Context) error {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Host     string `json:"host" validate:"required"`
		Port     int    `json:"port" validate:"required,min=1,max=65535"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	proxy := models.Proxy{Name: req.Name, Host: req.Host, Port: req.Port, Username: req.Username, Password: req.Password}
	if err := database.DB.Create(&proxy).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, proxy)
}

func (h *InfraHandler) DeleteProxy(c echo.Context) error {
	if err := database.DB.Delete(&models.Proxy{}, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *InfraHandler) CheckProxy(c echo.Context) error {
	var proxy models.Proxy
	if err := database.DB.First(&proxy, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Proxy not found"})
	}

	alive, latency, err := h.proxySvc.Check(proxy)
	proxy.Alive = alive
	proxy.LatencyMS = latency.Milliseconds()

	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return c.JSON(http.StatusOK, map[string]any{"proxy": proxy, "detail": detail})
}

func (h *InfraHandler) ListSSHHosts(c echo.Context) error {
	var hosts []models.SSHHost
	if err := database.DB.Find(&hosts).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	for i := range hosts {
		hosts[i].Password = ""
	}
	return c.JSON(http.StatusOK, hosts)
}

func (h *InfraHandler) CreateSSHHost(c echo.Context) error {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Host     string `json:"host" validate:"required"`
		Port     int    `json:"port" validate:"omitempty,min=1,max=65535"`
		User     string `json:"user" validate:"required"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	host := models.SSHHost{Name: req.Name, Host: req.Host, Port: req.Port, User: req.User, Password: req.Password}
	if err := database.DB.Create(&host).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	host.Password = ""
	return c.JSON(http.StatusCreated, host)
}

func (h *InfraHandler) DeleteSSHHost(c echo.Context) error {
	if err := database.DB.Delete(&models.SSHHost{}, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *InfraHandler) CheckSSHHost(c echo.Context) error {
	var host models.SSHHost
	if err := database.DB.First(&host, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "SSH host not found"})
	}

	reachable, err := h.sshSvc.Check(host)
	host.Reachable = reachable
	host.Password = ""

	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return c.JSON(http.StatusOK, map[string]any{"host": host, "detail": detail})
}

func (h *InfraHandler) ListProxyHosts(c echo.Context) error {
	var hosts []models.ProxyHost
	if err := database.DB.Find(&hosts).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, hosts)
}

func (h *InfraHandler) CreateProxyHost(c echo.Context) error {
	var req struct {
		DomainName  string `json:"domain_name" validate:"required,fqdn"`
		ForwardHost string `json:"forward_host" validate:"required"`
		ForwardPort int    `json:"forward_port" validate:"required,min=1,max=65535"`
		SSL         bool   `json:"ssl"`
	}
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	host := models.ProxyHost{DomainName: req.DomainName, ForwardHost: req.ForwardHost, ForwardPort: req.ForwardPort, SSL: req.SSL}

	if h.npm.Configured() {
		remoteID, err := h.npm.CreateProxyHost(c.Request().Context(), host)
		if err != nil {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
		}
		host.RemoteID = remoteID
	}

	if err := database.DB.Create(&host).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, host)
}

func (h *InfraHandler) DeleteProxyHost(c echo.Context) error {
	var host models.ProxyHost
	if err := database.DB.First(&host, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Proxy host not found"})
	}

	if h.npm.Configured() && host.RemoteID != 0 {
		if err := h.npm.DeleteProxyHost(c.Request().Context(), host.RemoteID); err != nil {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
		}
	}

	if err := database.DB.Delete(&host).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *InfraHandler) ListDomains(c echo.Context) error {
	var domains []models.Domain
	if err := database.DB.Order("updated_at desc").Find(&domains).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, domains)
}

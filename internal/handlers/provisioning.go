package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"domainpilot/internal/provisioning"
	"domainpilot/internal/services"
)

type ProvisionHandler struct {
	orch   *provisioning.Orchestrator
	dnsSvc *services.DNSService
}

// ProvisionRequest is one batch submission from the dashboard.
type ProvisionRequest struct {
	Domains            []string `json:"domains" validate:"required,min=1,dive,fqdn"`
	RootIP             string   `json:"root_ip" validate:"omitempty,ip4_addr"`
	Proxied            bool     `json:"proxied"`
	AccountID          uint     `json:"account_id"`
	RegistrarAccountID uint     `json:"registrar_account_id"`
}

// RetryRequest names one step of one queued domain.
type RetryRequest struct {
	Domain string `json:"domain" validate:"required"`
	Step   string `json:"step" validate:"required"`
}

func (h *ProvisionHandler) Enqueue(c echo.Context) error {
	var req ProvisionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	batchID := h.orch.Enqueue(provisioning.EnqueueParams{
		Domains:            req.Domains,
		RootIP:             req.RootIP,
		Proxied:            req.Proxied,
		AccountID:          req.AccountID,
		RegistrarAccountID: req.RegistrarAccountID,
	})

	return c.JSON(http.StatusAccepted, map[string]string{"batch_id": batchID})
}

func (h *ProvisionHandler) Queue(c echo.Context) error {
	items := h.orch.Snapshot()

	stats := map[provisioning.Status]int{}
	for _, it := range items {
		stats[it.Status]++
	}

	return c.JSON(http.StatusOK, map[string]any{
		"items": items,
		"stats": map[string]int{
			"pending":    stats[provisioning.StatusPending],
			"processing": stats[provisioning.StatusProcessing],
			"success":    stats[provisioning.StatusSuccess],
			"error":      stats[provisioning.StatusError],
		},
	})
}

func (h *ProvisionHandler) Cancel(c echo.Context) error {
	h.orch.Cancel()
	return c.NoContent(http.StatusAccepted)
}

func (h *ProvisionHandler) Reset(c echo.Context) error {
	h.orch.ResetQueue()
	return c.NoContent(http.StatusNoContent)
}

func (h *ProvisionHandler) Retry(c echo.Context) error {
	var req RetryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.orch.RetryStep(c.Request().Context(), req.Domain, req.Step)

	items := h.orch.Snapshot()
	for _, it := range items {
		if it.Domain == req.Domain {
			return c.JSON(http.StatusOK, it)
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": "Domain not queued"})
}

// VerifyNS checks NS delegation for a queued domain against the nameservers
// recorded at zone creation.
func (h *ProvisionHandler) VerifyNS(c echo.Context) error {
	domain := c.Param("domain")
	for _, it := range h.orch.Snapshot() {
		if it.Domain == domain {
			ok, detail, err := h.dnsSvc.VerifyNameservers(domain, it.Nameservers)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
			}
			return c.JSON(http.StatusOK, map[string]any{"verified": ok, "detail": detail})
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": "Domain not queued"})
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"domainpilot/internal/database"
	"domainpilot/internal/models"
)

type AccountHandler struct{}

func (h *AccountHandler) ListAccounts(c echo.Context) error {
	var accounts []models.Account
	if err := database.DB.Find(&accounts).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	// Tokens stay server-side.
	for i := range accounts {
		accounts[i].APIToken = ""
	}
	return c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"omitempty,email"`
		APIToken string `json:"api_token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account := models.Account{Name: req.Name, Email: req.Email, APIToken: req.APIToken}
	if err := database.DB.Create(&account).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	account.APIToken = ""
	return c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	if err := database.DB.Delete(&models.Account{}, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) ListRegistrarAccounts(c echo.Context) error {
	var accounts []models.RegistrarAccount
	if err := database.DB.Find(&accounts).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	for i := range accounts {
		accounts[i].APIKey = ""
		accounts[i].Token = ""
	}
	return c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) CreateRegistrarAccount(c echo.Context) error {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Provider string `json:"provider" validate:"required,oneof=namecheap njalla"`
		APIUser  string `json:"api_user"`
		APIKey   string `json:"api_key"`
		Username string `json:"username"`
		ClientIP string `json:"client_ip" validate:"omitempty,ip4_addr"`
		Token    string `json:"token"`
	}
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account := models.RegistrarAccount{
		Name:     req.Name,
		Provider: req.Provider,
		APIUser:  req.APIUser,
		APIKey:   req.APIKey,
		Username: req.Username,
		ClientIP: req.ClientIP,
		Token:    req.Token,
	}
	if err := database.DB.Create(&account).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	account.APIKey = ""
	account.Token = ""
	return c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) DeleteRegistrarAccount(c echo.Context) error {
	if err := database.DB.Delete(&models.RegistrarAccount{}, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

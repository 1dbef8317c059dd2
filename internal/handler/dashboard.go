package handler

import (
	"net/http"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/apierror"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Metrics(c *gin.Context) {
	resp, err := h.svc.Metrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute dashboard metrics"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) SalesReport(c *gin.Context) {
	resp, err := h.svc.SalesReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute sales report"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

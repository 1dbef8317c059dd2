package handler

import (
	"net/http"
	"strconv"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/apierror"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/dto"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/middleware"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoicesHandler struct {
	svc            service.InvoiceService
	businessName   string
	businessGSTIN  string
	pdfStoragePath string
}

func NewInvoicesHandler(svc service.InvoiceService, businessName, businessGSTIN, pdfStoragePath string) *InvoicesHandler {
	return &InvoicesHandler{
		svc:            svc,
		businessName:   businessName,
		businessGSTIN:  businessGSTIN,
		pdfStoragePath: pdfStoragePath,
	}
}

func (h *InvoicesHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	actor := service.Identity{}
	if claims := middleware.GetClaims(c); claims != nil {
		actor.ID = claims.UserID
		actor.Name = claims.Name
	}

	resp, err := h.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InvoicesHandler) List(c *gin.Context) {
	var filter dto.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list invoices"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) Recent(c *gin.Context) {
	n := 5
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}
	resp, err := h.svc.Recent(c.Request.Context(), n)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list recent invoices"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Invoice not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, found, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, apierror.New("Invoice not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete invoice"))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, apierror.New("Invoice not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

// PDF renders the invoice on demand and streams it back. The async receipt
// worker writes to the same path, so a pre-rendered file is reused.
func (h *InvoicesHandler) PDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	inv, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Invoice not found"))
		return
	}

	path, err := h.svc.RenderPDF(c.Request.Context(), id, h.businessName, h.businessGSTIN, h.pdfStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to render invoice PDF"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+inv.InvoiceNumber+`.pdf"`)
	c.File(path)
}

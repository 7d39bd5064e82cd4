package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marwan404/StudyHub/internal/service"
)

type ResourceHandler struct {
	resourceService *service.ResourceService
}

type resourceRequest struct {
	Name         string   `json:"name"`
	URL          string   `json:"url"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	AutoDescribe bool     `json:"autoDescribe"`
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

type describeRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (h *ResourceHandler) List(c *gin.Context) {
	resources, apiErr := h.resourceService.List(c.Request.Context(), c.Query("q"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	resource, apiErr := h.resourceService.Create(c.Request.Context(), req.input())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"resource": resource})
}

func (h *ResourceHandler) Update(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	resource, apiErr := h.resourceService.Update(c.Request.Context(), c.Param("id"), req.input())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resource": resource})
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	if apiErr := h.resourceService.Delete(c.Request.Context(), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler) Visit(c *gin.Context) {
	resource, apiErr := h.resourceService.Visit(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resource": resource, "url": resource.URL})
}

func (h *ResourceHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	resources, apiErr := h.resourceService.Reorder(c.Request.Context(), req.IDs)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

func (h *ResourceHandler) Describe(c *gin.Context) {
	var req describeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	description, apiErr := h.resourceService.Describe(c.Request.Context(), req.Name, req.URL)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": description})
}

func (r resourceRequest) input() service.ResourceInput {
	return service.ResourceInput{
		Name:         r.Name,
		URL:          r.URL,
		Description:  r.Description,
		Tags:         r.Tags,
		AutoDescribe: r.AutoDescribe,
	}
}

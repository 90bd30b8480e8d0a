package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sheltweezy/digestlibrary/services"
	"github.com/sheltweezy/digestlibrary/utils"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Svc    *services.ProfileService
	Photos utils.PhotoStore
}

func NewProfileController(svc *services.ProfileService, photos utils.PhotoStore) *ProfileController {
	return &ProfileController{Svc: svc, Photos: photos}
}

func (h *ProfileController) List(c *gin.Context) {
	profiles, err := h.Svc.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *ProfileController) Get(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	profile, err := h.Svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileController) Create(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.Svc.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileController) Update(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.Svc.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileController) Delete(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileController) UploadPhoto(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, fmt.Errorf("%w: missing file field", services.ErrInvalidArgument))
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, fmt.Errorf("%w: photo must be an image", services.ErrInvalidArgument))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	// Check the profile first so a bad id never leaves an orphan object.
	if _, err := h.Svc.Get(id); err != nil {
		respondError(c, err)
		return
	}

	url, err := h.Photos.Save(data, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	profile, err := h.Svc.SetPhotoURL(id, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

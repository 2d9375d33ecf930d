package api

import (
	"errors"
	"io"
	"net/http"

	reqdto "slabstock/internal/handler/dto/request"
	resdto "slabstock/internal/handler/dto/response"
	"slabstock/internal/usecase/commands"
	"slabstock/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uploads beyond this are refused before buffering
const maxPhotoSizeBytes = 20 << 20

type PhotoHandler struct {
	photoCommands commands.PhotoCommands
	lotQueries    queries.LotQueries
}

func NewPhotoHandler(photoCommands commands.PhotoCommands, lotQueries queries.LotQueries) *PhotoHandler {
	return &PhotoHandler{
		photoCommands: photoCommands,
		lotQueries:    lotQueries,
	}
}

// @Summary Add lot photo
// @Description Upload a photo for a lot as multipart form data
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param file formData file true "Photo file"
// @Param display_name formData string false "Display name"
// @Param sequence formData int false "Display order"
// @Param captured_at formData string false "Capture time, RFC 3339"
// @Param note formData string false "Note"
// @Success 201 {object} resdto.PhotoResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /lots/{id}/photos [post]
func (h *PhotoHandler) AddPhoto(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	var form reqdto.AddPhotoForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	capturedAt, err := form.ParseCapturedAt()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid captured_at timestamp",
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Photo file is required",
		})
		return
	}
	if fileHeader.Size > maxPhotoSizeBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "Photo exceeds maximum size",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read photo file",
		})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxPhotoSizeBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read photo file",
		})
		return
	}
	if len(payload) > maxPhotoSizeBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "Photo exceeds maximum size",
		})
		return
	}

	displayName := form.DisplayName
	if displayName == "" {
		displayName = fileHeader.Filename
	}

	photoID, err := h.photoCommands.Add(c.Request.Context(), commands.AddPhotoRequest{
		LotID:       lotID,
		DisplayName: displayName,
		Sequence:    form.Sequence,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Payload:     payload,
		CapturedAt:  capturedAt,
		Note:        form.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lot not found",
			})
		case errors.Is(err, commands.ErrEmptyPhoto):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Photo payload is empty",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	view, _, err := h.lotQueries.GetPhoto(c.Request.Context(), photoID)
	if err != nil {
		c.JSON(http.StatusCreated, gin.H{"id": photoID})
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPhotoView(view))
}

// @Summary List lot photos
// @Description Photos of a lot in display order, with download URLs when the blob driver supports presigning
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {array} resdto.PhotoResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/photos [get]
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	items, err := h.lotQueries.ListPhotos(c.Request.Context(), lotID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lot not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPhotoList(items))
}

// @Summary Download photo
// @Description Stream the photo bytes directly
// @Tags photos
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /photos/{id}/content [get]
func (h *PhotoHandler) DownloadPhoto(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid photo ID format",
		})
		return
	}

	view, payload, err := h.lotQueries.GetPhoto(c.Request.Context(), photoID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrPhotoNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Photo not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	contentType := view.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, payload)
}

// @Summary Delete photo
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /photos/{id} [delete]
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid photo ID format",
		})
		return
	}

	if err := h.photoCommands.Delete(c.Request.Context(), photoID); err != nil {
		switch {
		case errors.Is(err, commands.ErrPhotoNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Photo not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

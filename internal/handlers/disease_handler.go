package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/imagestore"
)

// 10 MB is generous for a leaf photo.
const maxImageBytes = 10 << 20

type DiseasePredictor interface {
	Predict(ctx context.Context, imageData io.Reader) (string, error)
}

type DiseaseHandler struct {
	classifier DiseasePredictor
	images     *imagestore.Store
	log        *logrus.Logger
}

func NewDiseaseHandler(classifier DiseasePredictor, images *imagestore.Store, log *logrus.Logger) *DiseaseHandler {
	return &DiseaseHandler{classifier: classifier, images: images, log: log}
}

// Predict accepts a leaf image upload and returns the classifier's
// label. The upload is archived to S3 when an archive bucket is
// configured; archive failures are logged, never surfaced.
func (h *DiseaseHandler) Predict(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "An image file upload is required.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		httperr.BadRequest(c, "unreadable_file", "Could not read the uploaded file.")
		return
	}
	if len(data) > maxImageBytes {
		httperr.BadRequest(c, "file_too_large", "Image must be at most 10 MB.")
		return
	}

	if key, err := h.images.Save(c.Request.Context(), data, "image/jpeg"); err != nil {
		h.log.WithError(err).Warn("image archive failed")
	} else if key != "" {
		h.log.WithField("key", key).Debug("image archived")
	}

	label, err := h.classifier.Predict(c.Request.Context(), bytes.NewReader(data))
	if err != nil {
		httperr.Internal(c, "prediction_failed", "Disease prediction failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"predicted_class": label})
}

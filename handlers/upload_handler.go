package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadHandler handles standalone file uploads
type UploadHandler struct {
	UploadDir string
}

func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{UploadDir: uploadDir}
}

// saveImageFile stores an uploaded image on disk and returns its public path.
func saveImageFile(c *fiber.Ctx, file *multipart.FileHeader, uploadDir string) (string, error) {
	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(uploadDir, filename)); err != nil {
		return "", err
	}

	// Static files are served from /uploads
	return "/uploads/products/" + filename, nil
}

// UploadImage handles image uploads and returns the file URL
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file is required",
		})
	}

	imageURL, err := saveImageFile(c, file, h.UploadDir)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not save file: only .jpg, .jpeg and .png are allowed",
		})
	}

	return c.JSON(fiber.Map{
		"url": imageURL,
	})
}

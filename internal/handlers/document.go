package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lexcase/lexcase-backend/internal/middleware"
	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

// DocumentHandler handles document metadata requests. File bytes live behind
// an external storage collaborator; only bookkeeping happens here.
type DocumentHandler struct {
	store storage.Store
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(store storage.Store) *DocumentHandler {
	return &DocumentHandler{store: store}
}

// Create records an upload and charges it against the owner's quota
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var doc models.UploadedDocument
	if err := c.BodyParser(&doc); err != nil || doc.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "title is required"})
	}

	uploaderID := middleware.UserID(c)
	if _, err := h.store.GetUser(uploaderID); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "unknown uploader"})
	}

	// Charge the quota before recording the upload; the store takes the
	// charge conditionally so concurrent uploads cannot overshoot.
	charged, err := h.store.ChargeStorage(uploaderID, doc.FileSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to update storage usage"})
	}
	if !charged {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"file_size": "storage quota exceeded",
		})
	}
	doc.UploadedByID = &uploaderID

	created, err := h.store.CreateDocument(&doc)
	if err != nil {
		_ = h.store.ReleaseStorage(uploaderID, doc.FileSize)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to create document"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// List returns all document records
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	docs, err := h.store.GetAllDocuments()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to list documents"})
	}
	return c.JSON(docs)
}

// Get returns a document record by id
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	doc, err := h.store.GetDocument(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	return c.JSON(doc)
}

// Delete removes a document record and releases its quota charge
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	doc, err := h.store.GetDocument(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}

	if err := h.store.DeleteDocument(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to delete document"})
	}

	if doc.UploadedByID != nil {
		_ = h.store.ReleaseStorage(*doc.UploadedByID, doc.FileSize)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

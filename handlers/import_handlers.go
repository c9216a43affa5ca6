package handlers

import (
	"bytes"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"practicehub/errs"
	"practicehub/internal/importer"
	"practicehub/utils"
)

// csvSource returns the uploaded CSV: the multipart field "file" when
// present, the raw body otherwise.
func (h *ApplicationHandler) csvSource(c *fiber.Ctx) (io.Reader, func(), error) {
	limit := h.Options.ImportMaxBytes
	if fh, err := c.FormFile("file"); err == nil {
		if limit > 0 && fh.Size > limit {
			return nil, nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "CSV file is too large")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, nil, errs.NewBadRequestErrorWithDetails("Cannot open uploaded file", err.Error())
		}
		return f, func() { f.Close() }, nil
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, nil, errs.NewBadRequestError("No CSV provided: send a multipart field named file or a text/csv body")
	}
	if limit > 0 && int64(len(body)) > limit {
		return nil, nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "CSV file is too large")
	}
	return bytes.NewReader(body), func() {}, nil
}

// ImportPracticantes godoc
// @Summary Import interns from CSV
// @Description mode=naive expects nombre,carrera,email,area,tecnologias(;),estado and drops short rows. mode=structured (default) reads columns by header name and keeps short rows with missing fields unset. Rows are appended without duplicate checks.
// @Tags practicantes
// @Accept mpfd
// @Accept plain
// @Produce json
// @Param mode query string false "naive or structured"
// @Param file formData file false "CSV file"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /practicantes/import [post]
func (h *ApplicationHandler) ImportPracticantes(c *fiber.Ctx) error {
	start := time.Now()
	mode, err := importer.ParseMode(c.Query("mode"))
	if err != nil {
		return errs.NewBadRequestError(err.Error())
	}
	src, closeSrc, err := h.csvSource(c)
	if err != nil {
		return err
	}
	defer closeSrc()

	records, err := importer.Parse(mode, src)
	if err != nil {
		return errs.NewBadRequestErrorWithDetails("Cannot parse CSV", err.Error())
	}
	inserted, err := h.Interns.CreateMany(c.UserContext(), importer.Practicantes(records))
	if err != nil {
		h.Logger.WithError(err).WithField("rows", len(records)).Error("CSV import failed")
		return err
	}

	h.Logger.WithFields(map[string]interface{}{
		"mode":       mode,
		"parsed":     len(records),
		"inserted":   inserted,
		"latency_ms": durationMillis(start),
	}).Info("CSV import completed")
	return utils.RespondWithJSON(c, fiber.StatusCreated, "Practicantes imported successfully", ImportResult{
		Mode:     string(mode),
		Parsed:   len(records),
		Inserted: inserted,
	})
}

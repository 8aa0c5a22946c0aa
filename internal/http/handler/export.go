package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"userapi/internal/service"
	"userapi/internal/storage"
)

// ExportUsers snapshots the collection to object storage.
//
// @Summary  Export users
// @Tags     exports
// @Produce  json
// @Success  201 {object} service.ExportResult
// @Failure  500 {object} errorPayload
// @Router   /api/user/exports [post]
func ExportUsers(exp service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := exp.Export(c.UserContext())
		if err != nil {
			return internalError(c, "export_users", err)
		}
		c.Location(userBasePath + "/exports/" + res.Name)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// DownloadExport streams a snapshot created by ExportUsers.
//
// @Summary  Download an export
// @Tags     exports
// @Produce  json
// @Param    name path string true "Export name"
// @Success  200
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /api/user/exports/{name} [get]
func DownloadExport(exp service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		rc, info, err := exp.Open(c.UserContext(), name)
		switch {
		case errors.Is(err, service.ErrInvalidExportName):
			return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "invalid export name")
		case errors.Is(err, storage.ErrObjectNotFound):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "export not found")
		case err != nil:
			return internalError(c, "download_export", err)
		}

		ct := info.ContentType
		if ct == "" {
			ct = fiber.MIMEApplicationJSON
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
		if info.ETag != "" {
			c.Set(fiber.HeaderETag, strconv.Quote(info.ETag))
		}
		// fasthttp closes rc once the body has been written
		return c.SendStream(rc, int(info.Size))
	}
}

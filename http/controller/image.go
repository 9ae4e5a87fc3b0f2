package controller

import (
	"io"
	"strconv"

	"github.com/KacperKuznik/image-hosting-api/access"
	"github.com/KacperKuznik/image-hosting-api/utils"
	"github.com/gin-gonic/gin"
)

func (ctrl *Controller) ListImages(c *gin.Context) {
	ctx := c.Request.Context()

	views, err := ctrl.Gate.ListImages(ctx, principal(c))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to list images: %v", err)
		utils.JSONError(c, err)
		return
	}

	utils.JSON200(c, views)
}

func (ctrl *Controller) UploadImage(c *gin.Context) {
	ctx := c.Request.Context()

	// An absent form field and an unreadable one are different failures:
	// nothing attached versus a broken attachment.
	var payload *access.UploadPayload
	fileHeader, err := c.FormFile("image")
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to open multipart file: %v", err)
			utils.JSON400(c, "invalid image payload")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to read multipart file: %v", err)
			utils.JSON400(c, "invalid image payload")
			return
		}
		payload = &access.UploadPayload{FileName: fileHeader.Filename, Data: data}
	}

	img, err := ctrl.Gate.Upload(ctx, principal(c), payload)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Upload rejected: %v", err)
		utils.JSONError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Image] Uploaded image %d with %d thumbnails", img.ID, len(img.Thumbnails))
	utils.JSON200(c, gin.H{
		"message":  "image uploaded successfully",
		"image_id": img.ID,
	})
}

func (ctrl *Controller) DeleteImage(c *gin.Context) {
	ctx := c.Request.Context()

	imageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSON400(c, "invalid image id")
		return
	}

	if err := ctrl.Gate.DeleteImage(ctx, principal(c), imageID); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to delete image %d: %v", imageID, err)
		utils.JSONError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Image] Deleted image %d", imageID)
	utils.JSON200(c, gin.H{"message": "image deleted"})
}

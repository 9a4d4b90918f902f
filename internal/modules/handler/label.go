package handler

import (
	"net/http"

	"github.com/assetlabel/inventory/internal/modules/serializer"
	"github.com/assetlabel/inventory/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type LabelHandler struct {
	svc service.LabelService
}

func NewLabelHandler(s service.LabelService) *LabelHandler {
	return &LabelHandler{svc: s}
}

// RenderPDFLabel godoc
//
//	@Summary		Render PDF label
//	@Description	Render the 40mm x 40mm PDF label of an asset, replacing any previous one
//	@Tags			label
//	@Produce		json
//	@Param			assetId	path		string	true	"Asset identifier"	Example(AST-2025-0001)
//	@Success		200		{object}	serializer.Response{data=service.LabelFile}
//	@Router			/labels/{assetId}/pdf [post]
func (h *LabelHandler) RenderPDFLabel(c *gin.Context) {
	assetID, err := paramAssetID(c, "assetId")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid asset identifier", err))
		return
	}

	f, err := h.svc.RenderPDF(c.Request.Context(), assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "label generated", Data: f})
}

// DownloadPDFLabel godoc
//
//	@Summary		Download PDF label
//	@Description	Download the PDF label of an asset, rendering it first when absent
//	@Tags			label
//	@Produce		application/pdf
//	@Param			assetId	path	string	true	"Asset identifier"	Example(AST-2025-0001)
//	@Success		200		{file}	file
//	@Router			/labels/{assetId}/pdf [get]
func (h *LabelHandler) DownloadPDFLabel(c *gin.Context) {
	assetID, err := paramAssetID(c, "assetId")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid asset identifier", err))
		return
	}

	f, err := h.svc.PDF(c.Request.Context(), assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.FileAttachment(f.LocalPath, f.FileName)
}

// RenderBarTenderLabel godoc
//
//	@Summary		Render BarTender label
//	@Description	Write the BarTender XML document of an asset label
//	@Tags			label
//	@Produce		json
//	@Param			assetId	path		string	true	"Asset identifier"	Example(AST-2025-0001)
//	@Success		200		{object}	serializer.Response{data=service.LabelFile}
//	@Router			/labels/{assetId}/bartender [post]
func (h *LabelHandler) RenderBarTenderLabel(c *gin.Context) {
	assetID, err := paramAssetID(c, "assetId")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid asset identifier", err))
		return
	}

	f, err := h.svc.RenderBarTender(c.Request.Context(), assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "label generated", Data: f})
}

type DeleteLabelsResp struct {
	AssetID string   `json:"asset_id"`
	Removed []string `json:"removed"`
}

// DeleteLabels godoc
//
//	@Summary		Delete labels
//	@Description	Delete every label file of an asset. Missing files are not an error.
//	@Tags			label
//	@Produce		json
//	@Param			assetId	path		string	true	"Asset identifier"	Example(AST-2025-0001)
//	@Success		200		{object}	serializer.Response{data=handler.DeleteLabelsResp}
//	@Router			/labels/{assetId} [delete]
func (h *LabelHandler) DeleteLabels(c *gin.Context) {
	assetID, err := paramAssetID(c, "assetId")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid asset identifier", err))
		return
	}

	removed, err := h.svc.DeleteLabels(c.Request.Context(), assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: DeleteLabelsResp{AssetID: assetID, Removed: removed}})
}

type BatchLabelsReq struct {
	AssetIDs []string `json:"asset_ids" example:"AST-2025-0001,AST-2025-0002"`
}

// RenderBatchLabels godoc
//
//	@Summary		Render batch labels
//	@Description	Print the labels of several assets, in request order, into one PDF
//	@Tags			label
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.BatchLabelsReq	true	"Asset identifiers"
//	@Success		200		{object}	serializer.Response{data=service.BatchFile}
//	@Failure		400		{object}	serializer.Response
//	@Router			/labels/batch [post]
func (h *LabelHandler) RenderBatchLabels(c *gin.Context) {
	req := BatchLabelsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	f, err := h.svc.RenderBatch(c.Request.Context(), req.AssetIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "batch generated", Data: f})
}

// DownloadBatchLabels godoc
//
//	@Summary	Download batch labels
//	@Tags		label
//	@Produce	application/pdf
//	@Param		file	path	string	true	"Batch file name"
//	@Success	200		{file}	file
//	@Router		/labels/batch/{file} [get]
func (h *LabelHandler) DownloadBatchLabels(c *gin.Context) {
	name := c.Param("file")
	p, err := h.svc.BatchPath(name)
	if err != nil {
		fail(c, err)
		return
	}
	c.FileAttachment(p, name)
}

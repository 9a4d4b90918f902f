package handler

import (
	"net/http"

	"github.com/assetlabel/inventory/internal/modules/model"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/modules/serializer"
	"github.com/assetlabel/inventory/internal/modules/service"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type AssetHandler struct {
	svc service.AssetService
}

func NewAssetHandler(s service.AssetService) *AssetHandler {
	return &AssetHandler{svc: s}
}

// CreateAsset godoc
//
//	@Summary		Create asset
//	@Description	Allocate the next asset identifier, generate its QR code and store the asset
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		service.CreateAssetInput	true	"Asset fields"
//	@Success		201		{object}	serializer.Response{data=service.AssetWithQR}
//	@Failure		400		{object}	serializer.Response
//	@Router			/assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	req := service.CreateAssetInput{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	asset, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Msg: "asset created", Data: asset})
}

type ListAssetsReq struct {
	Status      string `form:"status" json:"status" example:"Activo"`
	Location    string `form:"location" json:"location"`
	Responsible string `form:"responsible" json:"responsible"`
	Category    string `form:"category" json:"category"`
	Search      string `form:"q" json:"q"`
	Limit       int    `form:"limit,default=50" json:"limit" binding:"gte=0" example:"50"`
	Offset      int    `form:"offset,default=0" json:"offset" binding:"gte=0" example:"0"`
}

type ListAssetsResp struct {
	Items  []*model.Asset `json:"items"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ListAssets godoc
//
//	@Summary		List assets
//	@Description	List assets newest first, optionally filtered
//	@Tags			asset
//	@Produce		json
//	@Param			status		query		string	false	"Status"	Enums(Activo, Inactivo, Mantenimiento, Dado de Baja)
//	@Param			location	query		string	false	"Location"
//	@Param			responsible	query		string	false	"Responsible"
//	@Param			category	query		string	false	"Category"
//	@Param			q			query		string	false	"Search identifier, name or description"
//	@Param			limit		query		int		false	"Page size"	default(50)
//	@Param			offset		query		int		false	"Offset"	default(0)
//	@Success		200			{object}	serializer.Response{data=handler.ListAssetsResp}
//	@Router			/assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	req := ListAssetsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	status := model.AssetStatus(req.Status)
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid status", nil))
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultPageSize
	}
	if req.Limit > maxPageSize {
		req.Limit = maxPageSize
	}

	items, total, err := h.svc.List(c.Request.Context(), repo.AssetFilter{
		Status:      status,
		Location:    req.Location,
		Responsible: req.Responsible,
		Category:    req.Category,
		Search:      req.Search,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: ListAssetsResp{
		Items:  items,
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	}})
}

// GetAssetStats godoc
//
//	@Summary	Asset statistics
//	@Tags		asset
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=repo.AssetStats}
//	@Router		/assets/stats [get]
func (h *AssetHandler) GetAssetStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: stats})
}

// GetAsset godoc
//
//	@Summary		Get asset
//	@Description	Get an asset by its numeric id, with its QR code as a data URL
//	@Tags			asset
//	@Produce		json
//	@Param			id	path		int	true	"Asset ID"
//	@Success		200	{object}	serializer.Response{data=service.AssetWithQR}
//	@Failure		404	{object}	serializer.Response
//	@Router			/assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	asset, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: asset})
}

// UpdateAsset godoc
//
//	@Summary		Update asset
//	@Description	Update the mutable fields of an asset. The identifier never changes.
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Asset ID"
//	@Param			payload	body		service.UpdateAssetInput	true	"Fields to change"
//	@Success		200		{object}	serializer.Response{data=model.Asset}
//	@Router			/assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := service.UpdateAssetInput{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	asset, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: asset})
}

// DeleteAsset godoc
//
//	@Summary		Delete asset
//	@Description	Delete an asset together with its QR code and label files
//	@Tags			asset
//	@Produce		json
//	@Param			id	path		int	true	"Asset ID"
//	@Success		200	{object}	serializer.Response{data=service.DeleteResult}
//	@Router			/assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	res, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "asset deleted", Data: res})
}

// GetQRCode godoc
//
//	@Summary		Get QR code
//	@Description	Get the QR code of an asset by its identifier
//	@Tags			asset
//	@Produce		json
//	@Param			assetId	path		string	true	"Asset identifier"	Example(AST-2025-0001)
//	@Success		200		{object}	serializer.Response{data=qr.Artifact}
//	@Failure		400		{object}	serializer.Response
//	@Failure		404		{object}	serializer.Response
//	@Router			/assets/qr/{assetId} [get]
func (h *AssetHandler) GetQRCode(c *gin.Context) {
	assetID, err := paramAssetID(c, "assetId")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid asset identifier", err))
		return
	}

	art, err := h.svc.QRCode(c.Request.Context(), assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: art})
}

// RegenerateQR godoc
//
//	@Summary	Regenerate QR code
//	@Tags		asset
//	@Produce	json
//	@Param		id	path		int	true	"Asset ID"
//	@Success	200	{object}	serializer.Response{data=qr.Artifact}
//	@Router		/assets/{id}/generate-qr [post]
func (h *AssetHandler) RegenerateQR(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	art, err := h.svc.RegenerateQR(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "qr code generated", Data: art})
}

// RegenerateAllQR godoc
//
//	@Summary		Regenerate every QR code
//	@Description	Queue or run QR regeneration for every stored asset
//	@Tags			asset
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=service.RegenerateReport}
//	@Router			/assets/qr/regenerate-all [post]
func (h *AssetHandler) RegenerateAllQR(c *gin.Context) {
	report, err := h.svc.RegenerateAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: report})
}

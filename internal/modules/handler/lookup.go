package handler

import (
	"net/http"

	"github.com/assetlabel/inventory/internal/modules/model"
	"github.com/assetlabel/inventory/internal/modules/serializer"
	"github.com/assetlabel/inventory/internal/modules/service"
	"github.com/gin-gonic/gin"
)

// lookupHandler serves the CRUD endpoints shared by locations and
// responsibles.
type lookupHandler[T any, In any] struct {
	svc service.LookupService[T, In]
}

func (h lookupHandler[T, In]) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

func (h lookupHandler[T, In]) create(c *gin.Context) {
	var req In
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	v, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: v})
}

func (h lookupHandler[T, In]) update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	var req In
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	v, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: v})
}

func (h lookupHandler[T, In]) remove(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

type LocationHandler struct {
	lookupHandler[model.Location, service.LocationInput]
}

func NewLocationHandler(s service.LocationService) *LocationHandler {
	return &LocationHandler{lookupHandler[model.Location, service.LocationInput]{svc: s}}
}

// ListLocations godoc
//
//	@Summary	List locations
//	@Tags		location
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.Location}
//	@Router		/locations [get]
func (h *LocationHandler) ListLocations(c *gin.Context) { h.list(c) }

// CreateLocation godoc
//
//	@Summary	Create location
//	@Tags		location
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		service.LocationInput	true	"Location"
//	@Success	201		{object}	serializer.Response{data=model.Location}
//	@Failure	409		{object}	serializer.Response
//	@Router		/locations [post]
func (h *LocationHandler) CreateLocation(c *gin.Context) { h.create(c) }

// UpdateLocation godoc
//
//	@Summary	Update location
//	@Tags		location
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Location ID"
//	@Param		payload	body		service.LocationInput	true	"Location"
//	@Success	200		{object}	serializer.Response{data=model.Location}
//	@Router		/locations/{id} [put]
func (h *LocationHandler) UpdateLocation(c *gin.Context) { h.update(c) }

// DeleteLocation godoc
//
//	@Summary	Delete location
//	@Tags		location
//	@Produce	json
//	@Param		id	path		int	true	"Location ID"
//	@Success	200	{object}	serializer.Response{}
//	@Router		/locations/{id} [delete]
func (h *LocationHandler) DeleteLocation(c *gin.Context) { h.remove(c) }

type ResponsibleHandler struct {
	lookupHandler[model.Responsible, service.ResponsibleInput]
}

func NewResponsibleHandler(s service.ResponsibleService) *ResponsibleHandler {
	return &ResponsibleHandler{lookupHandler[model.Responsible, service.ResponsibleInput]{svc: s}}
}

// ListResponsibles godoc
//
//	@Summary	List responsibles
//	@Tags		responsible
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.Responsible}
//	@Router		/responsibles [get]
func (h *ResponsibleHandler) ListResponsibles(c *gin.Context) { h.list(c) }

// CreateResponsible godoc
//
//	@Summary	Create responsible
//	@Tags		responsible
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		service.ResponsibleInput	true	"Responsible"
//	@Success	201		{object}	serializer.Response{data=model.Responsible}
//	@Failure	409		{object}	serializer.Response
//	@Router		/responsibles [post]
func (h *ResponsibleHandler) CreateResponsible(c *gin.Context) { h.create(c) }

// UpdateResponsible godoc
//
//	@Summary	Update responsible
//	@Tags		responsible
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Responsible ID"
//	@Param		payload	body		service.ResponsibleInput	true	"Responsible"
//	@Success	200		{object}	serializer.Response{data=model.Responsible}
//	@Router		/responsibles/{id} [put]
func (h *ResponsibleHandler) UpdateResponsible(c *gin.Context) { h.update(c) }

// DeleteResponsible godoc
//
//	@Summary	Delete responsible
//	@Tags		responsible
//	@Produce	json
//	@Param		id	path		int	true	"Responsible ID"
//	@Success	200	{object}	serializer.Response{}
//	@Router		/responsibles/{id} [delete]
func (h *ResponsibleHandler) DeleteResponsible(c *gin.Context) { h.remove(c) }

type AssetNameHandler struct {
	svc service.AssetNameService
}

func NewAssetNameHandler(s service.AssetNameService) *AssetNameHandler {
	return &AssetNameHandler{svc: s}
}

// ListAssetNames godoc
//
//	@Summary		List asset names
//	@Description	List reusable base names with the number of assets created from each
//	@Tags			asset-name
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=[]model.AssetName}
//	@Router			/asset-names [get]
func (h *AssetNameHandler) ListAssetNames(c *gin.Context) {
	names, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: names})
}

// CreateAssetName godoc
//
//	@Summary	Create asset name
//	@Tags		asset-name
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		service.AssetNameInput	true	"Asset name"
//	@Success	201		{object}	serializer.Response{data=model.AssetName}
//	@Router		/asset-names [post]
func (h *AssetNameHandler) CreateAssetName(c *gin.Context) {
	req := service.AssetNameInput{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	n, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: n})
}

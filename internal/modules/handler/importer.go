package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/assetlabel/inventory/internal/modules/serializer"
	"github.com/assetlabel/inventory/internal/modules/service"
	"github.com/assetlabel/inventory/internal/pkg/excel"
	"github.com/assetlabel/inventory/internal/pkg/utils/path"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const (
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxImportBytes = 10 << 20
)

type ImportHandler struct {
	svc service.ImportService
}

func NewImportHandler(s service.ImportService) *ImportHandler {
	return &ImportHandler{svc: s}
}

// DownloadTemplate godoc
//
//	@Summary		Download import template
//	@Description	Download an Excel template with the expected headers and an example row
//	@Tags			import
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			entity	path	string	true	"Entity"	Enums(assets, locations, responsibles)
//	@Success		200		{file}	file
//	@Router			/templates/{entity} [get]
func (h *ImportHandler) DownloadTemplate(c *gin.Context) {
	entity, err := excel.ParseEntity(c.Param("entity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	buf := &bytes.Buffer{}
	if err := h.svc.Template(buf, entity); err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="plantilla_%s.xlsx"`, entity))
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

// ImportEntities godoc
//
//	@Summary		Import from Excel
//	@Description	Create one record per row of the first sheet. Existing names are skipped and failing rows are reported.
//	@Tags			import
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			entity	path		string	true	"Entity"	Enums(assets, locations, responsibles)
//	@Param			file	formData	file	true	"xlsx workbook"
//	@Success		200		{object}	serializer.Response{data=service.ImportResult}
//	@Failure		400		{object}	serializer.Response
//	@Router			/import/{entity} [post]
func (h *ImportHandler) ImportEntities(c *gin.Context) {
	entity, err := excel.ParseEntity(c.Param("entity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("file is required", err))
		return
	}
	if fh.Size > maxImportBytes {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("file is too large", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("cannot read file", err))
		return
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("cannot read file", err))
		return
	}
	if !isWorkbook(mtype, fh.Filename) {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(fmt.Sprintf("expected an xlsx workbook, got %s", mtype.String()), nil))
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("cannot read file", err))
		return
	}

	res, err := h.svc.Import(c.Request.Context(), entity, fh.Filename, f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "import finished", Data: res})
}

// isWorkbook accepts sniffed xlsx content. Some writers order zip entries so
// that only the container is recognised; those pass when named .xlsx.
func isWorkbook(mtype *mimetype.MIME, fileName string) bool {
	if mtype.Is(xlsxMIME) {
		return true
	}
	return mtype.Is("application/zip") && path.HasExt(fileName, ".xlsx")
}

type ListImportJobsReq struct {
	Limit int `form:"limit,default=20" json:"limit" binding:"gte=1,lte=200" example:"20"`
}

// ListImportJobs godoc
//
//	@Summary	List import jobs
//	@Tags		import
//	@Produce	json
//	@Param		limit	query		int	false	"Max jobs"	default(20)
//	@Success	200		{object}	serializer.Response{data=[]model.ImportJob}
//	@Router		/import/jobs [get]
func (h *ImportHandler) ListImportJobs(c *gin.Context) {
	req := ListImportJobsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	jobs, err := h.svc.Jobs(c.Request.Context(), req.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: jobs})
}

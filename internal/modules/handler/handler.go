package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/assetlabel/inventory/internal/modules/serializer"
	"github.com/assetlabel/inventory/internal/pkg/identifier"
	"github.com/gin-gonic/gin"
)

var errInvalidID = errors.New("id must be a positive integer")

// fail writes err as a classified envelope.
func fail(c *gin.Context, err error) {
	status, res := serializer.FromError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, res)
}

func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// paramAssetID rejects malformed asset identifiers before any lookup.
func paramAssetID(c *gin.Context, name string) (string, error) {
	v := c.Param(name)
	if !identifier.Valid(v) {
		return "", fmt.Errorf("%w: %q", identifier.ErrInvalid, v)
	}
	return v, nil
}

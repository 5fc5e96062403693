package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"reelview-admin/internal/apperrors"
	"reelview-admin/internal/dto"
	"reelview-admin/internal/service"
	"reelview-admin/response"
)

type TranslationHandler struct {
	svc *service.TranslationService
}

func NewTranslationHandler(svc *service.TranslationService) *TranslationHandler {
	return &TranslationHandler{svc: svc}
}

// UpsertTranslationHandler 新增或覆盖翻译（PUT /api/translations）
func (h *TranslationHandler) UpsertTranslationHandler(c *gin.Context) {
	var req dto.UpsertTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(err, req))
		return
	}

	t, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(t, "translation saved"))
}

// ListTranslationsHandler 分页查询翻译（GET /api/translations?locale=hi&key=NavItems&page=1&size=10）
func (h *TranslationHandler) ListTranslationsHandler(c *gin.Context) {
	var q dto.ListTranslationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperrors.InvalidRequestError("page must be >= 1 and size between 1 and 100"))
		return
	}

	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(page, "success"))
}

// DeleteTranslationHandler 删除翻译（DELETE /api/translations/:id）
func (h *TranslationHandler) DeleteTranslationHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		_ = c.Error(apperrors.InvalidRequestError("invalid id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), uint(id)); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK("", "translation deleted"))
}

// bindingError 通过反射取第一个校验失败字段的 msg 标签作为错误提示
func bindingError(err error, req any) *apperrors.AppError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			field, ok := reflect.TypeOf(req).FieldByName(e.StructField())
			if !ok {
				continue
			}
			if msg := field.Tag.Get("msg"); msg != "" {
				return apperrors.InvalidRequestError(msg)
			}
		}
	}
	return apperrors.InvalidRequestErrorDefault()
}

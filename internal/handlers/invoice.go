package handlers

import (
	"net/http"

	"github.com/Lija868/invoice-gen/internal/handlers/render"
	"github.com/Lija868/invoice-gen/internal/handlers/userctx"
	"github.com/Lija868/invoice-gen/internal/logger"
	"github.com/Lija868/invoice-gen/internal/messages"
	"github.com/Lija868/invoice-gen/internal/service/invoice"
)

func handleCreateInvoices(is invoiceService, l logger.Logger) http.Handler {
	type CreateInvoicesRequest struct {
		Invoices []invoice.Line `json:"invoices" validate:"required,min=1"`
	}
	type CreateInvoicesResponse struct {
		Code       int            `json:"code"`
		Message    string         `json:"message"`
		ErrorLines []invoice.Line `json:"error_lines"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := userctx.FromContext(r.Context())
		if !ok {
			render.Code(w, http.StatusInternalServerError, messages.CodeInternalError)
			return
		}

		data, err := render.BindAndValidate[CreateInvoicesRequest](w, r)
		if err != nil {
			return
		}

		errorLines, err := is.CreateBatch(r.Context(), identity.UserID, data.Invoices)
		if err != nil {
			l.Error("invoice batch create failed", "error", err.Error())
			render.Code(w, http.StatusInternalServerError, messages.CodeInternalError)
			return
		}

		render.JSON(w, CreateInvoicesResponse{
			Code:       messages.CodeOK,
			Message:    messages.Get(messages.CodeOK),
			ErrorLines: errorLines,
		})
	})
}

func handleGenerateInvoice(is invoiceService, rs reportService, l logger.Logger) http.Handler {
	type GenerateResponse struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Path    string `json:"path"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := userctx.FromContext(r.Context())
		if !ok {
			render.Code(w, http.StatusInternalServerError, messages.CodeInternalError)
			return
		}

		summary, err := is.Summarize(r.Context(), identity.UserID)
		if err != nil {
			l.Error("invoice summary failed", "error", err.Error())
			render.Code(w, http.StatusInternalServerError, messages.CodeInternalError)
			return
		}

		path, err := rs.Generate(identity.UserID, summary)
		if err != nil {
			l.Error("report generation failed", "error", err.Error())
			render.Code(w, http.StatusInternalServerError, messages.CodeInternalError)
			return
		}

		w.Header().Set("Cache-Control", "max-age=0")
		render.JSON(w, GenerateResponse{
			Code:    messages.CodeOK,
			Message: messages.Get(messages.CodeOK),
			Path:    path,
		})
	})
}

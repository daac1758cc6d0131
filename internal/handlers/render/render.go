// Package render writes API responses in the domain envelope
// {code, message, ...} where code is a domain status distinct from the HTTP
// status.
package render

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Lija868/invoice-gen/internal/messages"
)

type Struct any

// Envelope is the minimal response body every endpoint shares
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ValidationItem struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ValidationResponse struct {
	Code        int              `json:"code"`
	Message     string           `json:"message"`
	Validations []ValidationItem `json:"validations"`
}

func JSON(w http.ResponseWriter, data any) {
	JSONWithStatus(w, data, http.StatusOK)
}

// Code writes the bare envelope for a domain code with the given HTTP status
func Code(w http.ResponseWriter, httpStatus int, code int) {
	JSONWithStatus(w, Envelope{Code: code, Message: messages.Get(code)}, httpStatus)
}

// ValidationErrors converts validator errors into the domain envelope.
// Missing or empty fields are reported as a list of field level codes under
// code 600. A present but malformed email is its own top level code.
func ValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	items := make([]ValidationItem, 0, len(errs))
	for _, fieldError := range errs {
		switch fieldError.Tag() {
		// "min" guards lists that are present but empty, same domain code
		case "required", "min":
			code := messages.FieldCode(fieldError.Field())
			items = append(items, ValidationItem{Code: code, Message: messages.Get(code)})
		}
	}

	if len(items) > 0 {
		JSONWithStatus(w, ValidationResponse{
			Code:        messages.CodeValidationFailed,
			Message:     messages.Get(messages.CodeValidationFailed),
			Validations: items,
		}, http.StatusPreconditionFailed)
		return
	}

	for _, fieldError := range errs {
		if fieldError.Tag() == "email" {
			Code(w, http.StatusPreconditionFailed, messages.CodeEmailInvalid)
			return
		}
	}

	Code(w, http.StatusPreconditionFailed, messages.CodeValidationFailed)
}

// BindAndValidate decodes JSON request body into type T and validates it
// using struct tags. Writes the error envelope itself on failure.
func BindAndValidate[T Struct](w http.ResponseWriter, r *http.Request) (T, error) {
	var value T

	err := json.NewDecoder(r.Body).Decode(&value)
	if err != nil {
		Code(w, http.StatusBadRequest, messages.CodeBadRequest)
		return value, err
	}

	err = validate.Struct(value)
	if err != nil {
		// pretty sure cast will be ok cause expecting T is valid struct
		errs := err.(validator.ValidationErrors)
		ValidationErrors(w, errs)
		return value, err
	}

	return value, nil
}

// JSONWithStatus sends data as json and enforces status code
func JSONWithStatus(w http.ResponseWriter, data any, code int) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)

	if err := enc.Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// Package messages holds the domain status codes the API reports in its
// response envelope. The codes are part of the public contract and are
// distinct from HTTP status codes.
package messages

// Envelope codes
const (
	CodeInternalError      = 114
	CodeOK                 = 200
	CodeCreated            = 201
	CodeNoRecords          = 204
	CodeAlreadyDeleted     = 250
	CodeFirstNameEmpty     = 302
	CodeLastNameEmpty      = 303
	CodeUsernameEmpty      = 304
	CodePasswordEmpty      = 305
	CodeEmailEmpty         = 307
	CodeUserIDEmpty        = 308
	CodeInvoicesEmpty      = 325
	CodeBadRequest         = 400
	CodeUnauthorizedToken  = 401
	CodeForbidden          = 403
	CodeNotFound           = 404
	CodeTokenEmpty         = 410
	CodeInvalidUser        = 501
	CodeInactiveUser       = 502
	CodeLoginFailed        = 503
	CodeRefreshTokenEmpty  = 504
	CodeNotRefreshToken    = 505
	CodeTokenInvalid       = 506
	CodeValidationFailed   = 600
	CodeEmailInvalid       = 604
	CodePasswordCriteria   = 618
	CodePasswordMismatch   = 619
	CodeEmailTaken         = 621
	CodeNotAllowed         = 622
)

var messages = map[int]string{
	CodeInternalError:     "Unable to process the request at this time, please try again later.",
	CodeOK:                "Ok",
	CodeCreated:           "Created.",
	CodeNoRecords:         "No Records found",
	CodeAlreadyDeleted:    "Information does not exist. Might have been already deleted.",
	CodeFirstNameEmpty:    "First name  cannot be null or empty.",
	CodeLastNameEmpty:     "Last name  cannot be null or empty.",
	CodeUsernameEmpty:     "Username cannot be null or empty.",
	CodePasswordEmpty:     "Password cannot be null or empty.",
	CodeEmailEmpty:        "Email cannot be null or empty.",
	CodeUserIDEmpty:       "User id cannot be null or empty.",
	CodeInvoicesEmpty:     "Invoices cannot be null or empty.",
	CodeBadRequest:        "Bad request",
	CodeUnauthorizedToken: "Unauthorized token",
	CodeForbidden:         "Forbidden.",
	CodeNotFound:          "Not Found.",
	CodeTokenEmpty:        "Token cannot be empty.",
	CodeInvalidUser:       "Invalid User.",
	CodeInactiveUser:      "Inactive User.",
	CodeLoginFailed:       "Login Failed. Username or password is incorrect.",
	CodeRefreshTokenEmpty: "Refresh token cannot be empty.",
	CodeNotRefreshToken:   "Not Refresh Token.",
	CodeTokenInvalid:      "Expired or Invalid Token.",
	CodeValidationFailed:  "Validation failed.",
	CodeEmailInvalid:      "Email is not valid.",
	CodePasswordCriteria:  "Password doesn't match the criteria.",
	CodePasswordMismatch:  "Current Password does not match with previous one.",
	CodeEmailTaken:        "Email is already registered, try another Email.",
	CodeNotAllowed:        "Not allowed",
}

// Mapping of request field names (json tags) to the code reported when
// the field is missing or empty
var fieldCodes = map[string]int{
	"first_name": CodeFirstNameEmpty,
	"last_name":  CodeLastNameEmpty,
	"user_name":  CodeUsernameEmpty,
	"password":   CodePasswordEmpty,
	"email":      CodeEmailEmpty,
	"user_id":    CodeUserIDEmpty,
	"invoices":   CodeInvoicesEmpty,
}

// Get returns the message for a known code or the generic bad request text
func Get(code int) string {
	msg, ok := messages[code]
	if !ok {
		return messages[CodeBadRequest]
	}
	return msg
}

// FieldCode maps a request field name to its "cannot be null or empty" code
func FieldCode(field string) int {
	code, ok := fieldCodes[field]
	if !ok {
		return CodeValidationFailed
	}
	return code
}

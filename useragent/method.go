package useragent

// Method is the request method of a Run.
type Method int

const (
	MethodInvalid Method = iota - 1
	MethodDelete
	MethodGet
	MethodPost
	// MethodMimePost sends a multipart/form-data body built by the mime hook.
	MethodMimePost
	MethodPatch
	MethodPut
)

var methodNames = [...]string{
	MethodDelete:   "DELETE",
	MethodGet:      "GET",
	MethodPost:     "POST",
	MethodMimePost: "MIMEPOST",
	MethodPatch:    "PATCH",
	MethodPut:      "PUT",
}

// String returns the method token, or "INVALID".
func (m Method) String() string {
	if !m.Valid() {
		return "INVALID"
	}
	return methodNames[m]
}

// Valid reports whether m is one of the defined methods.
func (m Method) Valid() bool {
	return m >= MethodDelete && m <= MethodPut
}

// wire is the method sent to the server.
func (m Method) wire() string {
	if m == MethodMimePost {
		return "POST"
	}
	return m.String()
}

// ParseMethod is the inverse of String. Unknown tokens yield MethodInvalid.
func ParseMethod(s string) Method {
	for i, name := range methodNames {
		if name == s {
			return Method(i)
		}
	}
	return MethodInvalid
}

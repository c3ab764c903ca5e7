package httpadapter

import "net/http"

// Response is a complete HTTP response: status, headers and a body encoded
// through the MessageConverter.
type Response struct {
	Status int
	Header http.Header
	Body   any
}

// ResponseConvertible is implemented by values that know their own response.
type ResponseConvertible interface {
	ToResponse() Response
}

// NewResponse returns a response with status and body and empty headers.
func NewResponse(status int, body any) Response {
	return Response{Status: status, Header: http.Header{}, Body: body}
}

// toResponse turns a handler result into a Response. A Response or a
// ResponseConvertible is used as is; any other value becomes the body of a
// copy of envelope, or of a 200 response when envelope is nil.
func toResponse(envelope *Response, v any) Response {
	switch x := v.(type) {
	case Response:
		return x
	case *Response:
		if x != nil {
			return *x
		}
		v = nil
	case ResponseConvertible:
		return x.ToResponse()
	}
	r := Response{Status: http.StatusOK, Header: http.Header{}, Body: v}
	if envelope != nil {
		if envelope.Status != 0 {
			r.Status = envelope.Status
		}
		r.Header = envelope.Header.Clone()
		if r.Header == nil {
			r.Header = http.Header{}
		}
	}
	return r
}

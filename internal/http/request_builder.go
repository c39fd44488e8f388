package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// RequestBuilder decodes JSON request bodies and runs gin's binding tags.
type RequestBuilder struct {
	c *gin.Context
}

// NewRequestBuilder creates a new request builder for the given context.
func NewRequestBuilder(c *gin.Context) *RequestBuilder {
	return &RequestBuilder{c: c}
}

// Bind decodes a required body into v.
func (b *RequestBuilder) Bind(v interface{}) error {
	return b.c.ShouldBindJSON(v)
}

// BindOptional is Bind for endpoints such as guide or estimate whose body may
// be omitted. An absent body leaves v untouched.
func (b *RequestBuilder) BindOptional(v interface{}) error {
	if b.c.Request.Body == nil || b.c.Request.ContentLength == 0 {
		return nil
	}
	err := b.c.ShouldBindJSON(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Validator is implemented by request DTOs with rules that binding tags
// cannot express.
type Validator interface {
	Validate() error
}

// BuildRequest decodes the body into a new T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	req := new(T)
	if err := NewRequestBuilder(c).Bind(req); err != nil {
		return nil, err
	}
	return req, nil
}

// BuildRequestAndValidate is BuildRequest followed by T's Validate method,
// when it has one.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

package feed

import (
	"errors"
	"net/http"
)

const (
	MessageRateLimited = "عذراً، يوجد ضغط عالي على الخادم. يرجى المحاولة مرة أخرى بعد قليل"
	MessageGeneric     = "حدث خطأ أثناء تحميل الأخبار. يرجى المحاولة مرة أخرى"
)

// Failure is the user-facing description of a failed fetch.
type Failure struct {
	Message    string `json:"message"`
	HTTPStatus int    `json:"httpStatus,omitempty"`
}

func (f *Failure) RateLimited() bool {
	return f.HTTPStatus == http.StatusTooManyRequests
}

// statusCoder is implemented by errors that carry an upstream HTTP status.
type statusCoder interface {
	StatusCode() int
}

// Classify turns a fetch error into a Failure. Only a 429 status gets its own
// message.
func Classify(err error) *Failure {
	f := &Failure{Message: MessageGeneric}

	var sc statusCoder
	if errors.As(err, &sc) {
		f.HTTPStatus = sc.StatusCode()
	}

	if f.RateLimited() {
		f.Message = MessageRateLimited
	}

	return f
}

package adapter

import (
	"errors"

	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"
)

// FetchError 把 HTTP/解析错误包装为 ProviderFetchError，保留状态码
func FetchError(platform model.PlatformType, op string, err error) error {
	fe := &model.ProviderFetchError{Platform: platform, Op: op, Err: err}
	var se *httpclient.StatusError
	if errors.As(err, &se) {
		fe.StatusCode = se.StatusCode
	}
	return fe
}

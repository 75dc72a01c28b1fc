package ranking

import "errors"

var (
	// ErrValidation 잘못된 요청 파라미터 (필수값 누락, 알 수 없는 mode)
	ErrValidation = errors.New("invalid ranking request")

	// ErrUpstreamUnavailable universe 조회 실패 (watchlist 서비스 / 전송 오류)
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNoBrokerData 브로커 요약 데이터 없음 (종목 단위 실패)
	ErrNoBrokerData = errors.New("no broker data available")
)

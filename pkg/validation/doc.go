// Package validation 설정 파일과 API 요청으로 들어오는 네트워크 관련 값의 형식을 검증합니다.
package validation

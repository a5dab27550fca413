package validation

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// ValidateCORSOrigin origin이 'Scheme://Host[:Port]' 형식의 CORS Origin인지 검증합니다.
//
// '*'는 모든 출처 허용으로 간주하여 유효합니다. 스키마는 http, https만 허용하며
// 경로, 후행 슬래시, 쿼리, Fragment, 사용자 정보를 포함하면 유효하지 않습니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	switch {
	case origin == "*":
		return nil
	case origin == "":
		return fmt.Errorf("CORS Origin은 비어있을 수 없습니다")
	case strings.HasSuffix(origin, "/"):
		return fmt.Errorf("CORS Origin 포맷 오류: 경로 구분자('/')로 끝날 수 없습니다 (input=%q)", origin)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin 파싱 실패: 유효한 URL 형식이 아닙니다 (input=%q): %w", origin, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CORS Origin 스키마 오류: 'http' 또는 'https'만 허용됩니다 (input=%q)", origin)
	}

	var part string
	switch {
	case u.Path != "":
		part = "경로(Path)"
	case u.RawQuery != "":
		part = "쿼리 파라미터"
	case u.Fragment != "":
		part = "URL Fragment(#)"
	case u.User != nil:
		part = "사용자 자격 증명(UserInfo)"
	}
	if part != "" {
		return fmt.Errorf("CORS Origin 포맷 오류: %s를 포함할 수 없습니다 (input=%q)", part, origin)
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("CORS Origin 포트 오류: 포트 번호가 유효하지 않습니다 (input=%q, port=%s)", origin, p)
		}
		if err := ValidatePort(port); err != nil {
			return fmt.Errorf("CORS Origin 포트 오류: %w (input=%q)", err, origin)
		}
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("CORS Origin 포맷 오류: 호스트(Host) 정보가 누락되었습니다 (input=%q)", origin)
	}
	if err := ValidateHostname(host); err != nil {
		return fmt.Errorf("CORS Origin 호스트 유효성 검증 실패: %w", err)
	}

	return nil
}

// ValidatePort 포트 번호가 1-65535 범위인지 검증합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname host가 localhost, IP 주소 또는 RFC 1123 호스트명인지 검증합니다.
func ValidateHostname(host string) error {
	if host == "localhost" || net.ParseIP(host) != nil {
		return nil
	}

	if len(host) > 253 {
		return fmt.Errorf("호스트명 전체 길이는 253자를 초과할 수 없습니다 (len=%d)", len(host))
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if err := validateLabel(host, label); err != nil {
			return err
		}
	}

	// TLD는 숫자로만 구성될 수 없습니다.
	tld := labels[len(labels)-1]
	if strings.Trim(tld, "0123456789") == "" {
		return fmt.Errorf("최상위 도메인(TLD)은 숫자로만 구성될 수 없습니다 (tld=%q)", tld)
	}

	return nil
}

func validateLabel(host, label string) error {
	if label == "" {
		return fmt.Errorf("호스트명에 빈 레이블(연속된 점 등)이 포함되어 있습니다 (host=%q)", host)
	}
	if len(label) > 63 {
		return fmt.Errorf("각 레이블은 63자를 초과할 수 없습니다 (label=%q)", label)
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return fmt.Errorf("레이블은 하이픈(-)으로 시작하거나 끝날 수 없습니다 (label=%q)", label)
	}

	for _, r := range label {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
			return fmt.Errorf("호스트명은 영문, 숫자, 하이픈(-)으로만 구성되어야 합니다 (invalid_char=%q, host=%q)", r, host)
		}
	}
	return nil
}

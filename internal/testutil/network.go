// Package testutil 여러 패키지의 테스트가 함께 사용하는 헬퍼입니다.
package testutil

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// FreePort 테스트용으로 사용 가능한 임의의 TCP 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// HTTPClient Keep-Alive를 끈 테스트용 클라이언트입니다. 테스트가 끝난 뒤 연결 고루틴이 남지 않습니다.
func HTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
		Timeout:   time.Second,
	}
}

// Get url을 조회하여 상태 코드와 본문을 반환합니다. 연결에 실패하면 상태 코드는 0입니다.
func Get(client *http.Client, url string) (int, string) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, ""
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

// WaitForHTTP url이 200 OK를 반환할 때까지 기다립니다.
func WaitForHTTP(t testing.TB, client *http.Client, url string) {
	t.Helper()

	require.Eventually(t, func() bool {
		code, _ := Get(client, url)
		return code == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond, "서버가 %s 에서 응답해야 합니다", url)
}

// Package version 빌드 시점에 주입된 버전 정보와 실행 환경 정보를 제공합니다.
//
// 빌드 스크립트는 다음과 같이 링커 플래그로 값을 주입합니다:
//
//	go build -ldflags "-X github.com/darkkaiser/prime-calculator/internal/pkg/version.appVersion=v1.2.0 \
//	  -X github.com/darkkaiser/prime-calculator/internal/pkg/version.gitCommitHash=abc1234"
//
// 주입된 값이 없으면 실행 파일의 VCS 메타데이터(debug.ReadBuildInfo)로 보강합니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"

	applog "github.com/darkkaiser/prime-calculator/pkg/log"
)

const unknown = "unknown"

// 링커 플래그(-ldflags -X)로 주입되는 값입니다. 직접 읽지 말고 Get()을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = "" // clean 또는 dirty
	buildDate     = ""
	buildNumber   = ""
)

var current atomic.Pointer[Info]

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 둡니다.
var readBuildInfo = debug.ReadBuildInfo

func init() {
	Set(Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	})
}

// Info 애플리케이션의 빌드 정보입니다. /version API 응답과 시작 로그에 사용됩니다.
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	DirtyBuild  bool   `json:"dirty_build"`
}

// Get 현재 등록된 빌드 정보를 반환합니다. 여러 고루틴에서 동시에 호출할 수 있습니다.
func Get() Info {
	if bi := current.Load(); bi != nil {
		return *bi
	}
	return Info{Version: unknown, Commit: unknown, BuildDate: unknown, BuildNumber: "0"}
}

// Set 빌드 정보를 등록합니다. 비어 있는 필드는 실행 환경과 VCS 메타데이터로 채워집니다.
func Set(bi Info) {
	enriched := enrich(bi)
	current.Store(&enriched)
}

func enrich(bi Info) Info {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.OS == "" {
		bi.OS = runtime.GOOS
	}
	if bi.Arch == "" {
		bi.Arch = runtime.GOARCH
	}

	fillFromVCS(&bi)

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" || bi.Commit == "none" {
		bi.Commit = unknown
	}
	if bi.BuildDate == "" {
		bi.BuildDate = unknown
	}

	return bi
}

// fillFromVCS 주입되지 않은 커밋과 빌드 날짜를 실행 파일의 VCS 메타데이터로 채웁니다.
func fillFromVCS(bi *Info) {
	val, ok := readBuildInfo()
	if !ok {
		return
	}

	for _, setting := range val.Settings {
		switch setting.Key {
		case "vcs.revision":
			if isMissing(bi.Commit) {
				bi.Commit = setting.Value
			}
		case "vcs.time":
			if isMissing(bi.BuildDate) {
				bi.BuildDate = setting.Value
			}
		case "vcs.modified":
			if setting.Value == "true" {
				bi.DirtyBuild = true
			}
		}
	}
	if bi.Version == "" && val.Main.Version != "" && val.Main.Version != "(devel)" {
		bi.Version = val.Main.Version
	}
}

func isMissing(s string) bool {
	return s == "" || s == unknown || s == "none"
}

// ShortCommit 7자리로 줄인 커밋 해시를 반환합니다.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// Fields 구조적 로깅에 사용할 필드 맵을 반환합니다.
func (i Info) Fields() applog.Fields {
	return applog.Fields{
		"version":      i.Version,
		"commit":       i.ShortCommit(),
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"os":           i.OS,
		"arch":         i.Arch,
		"dirty_build":  i.DirtyBuild,
	}
}

// String 배너와 로그에 출력할 한 줄 요약입니다. 예: v1.2.0+dirty (commit: abc1234, build: 12, linux/amd64)
func (i Info) String() string {
	if i.Version == "" {
		return unknown
	}

	v := i.Version
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if !isMissing(i.Commit) {
		details = append(details, "commit: "+i.ShortCommit())
	}
	if i.BuildNumber != "" {
		details = append(details, "build: "+i.BuildNumber)
	}
	if !isMissing(i.BuildDate) {
		details = append(details, "date: "+i.BuildDate)
	}
	if i.GoVersion != "" {
		details = append(details, i.GoVersion)
	}
	if i.OS != "" && i.Arch != "" {
		details = append(details, fmt.Sprintf("%s/%s", i.OS, i.Arch))
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}

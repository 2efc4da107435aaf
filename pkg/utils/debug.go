package utils

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// GetFileAndLoC returns "package/file.go:line" of the caller skip frames above
// the function calling it, e.g. "video-app/pkg/auth/jwt.go:42". The package
// import path replaces the on-disk directory. It returns "unknown:0" when the
// stack is not that deep.
func GetFileAndLoC(skip int) string {
	pc, file, line, ok := runtime.Caller(1 + skip)
	if !ok {
		return "unknown:0"
	}

	if fn := runtime.FuncForPC(pc); fn != nil {
		if pkg := packagePath(fn.Name()); pkg != "" {
			file = pkg + "/" + filepath.Base(file)
		}
	}

	return file + ":" + strconv.Itoa(line)
}

// packagePath extracts the import path from a qualified function name such as
// "video-app/pkg/auth.(*JWTManager).GenerateToken".
func packagePath(funcName string) string {
	slash := strings.LastIndex(funcName, "/")
	dot := strings.Index(funcName[slash+1:], ".")
	if dot == -1 {
		return ""
	}
	return funcName[:slash+1+dot]
}

package stacktrace

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/authmigrate/internal/pkg/router.middlewareRecoverer.func1.1()
	/app/internal/pkg/router/middleware_recover.go:33 +0x7a
panic({0x1, 0x2})
	/usr/local/go/src/runtime/panic.go:791 +0x132
github.com/shandysiswandi/authmigrate/internal/authenticator/usecase.(*Usecase).NextCode(...)
	/app/internal/authenticator/usecase/code_next.go:48
`)

	assert.Equal(t, []string{
		"internal/pkg/router/middleware_recover.go:33",
		"internal/authenticator/usecase/code_next.go:48",
	}, InternalPaths(stack))
}

func TestInternalPaths_Empty(t *testing.T) {
	assert.Empty(t, InternalPaths(nil))
	assert.Empty(t, InternalPaths([]byte("goroutine 1 [running]:\nmain.main()\n\t/app/main.go:10 +0x1\n")))
}

func TestInternalPaths_RealStack(t *testing.T) {
	paths := InternalPaths(debug.Stack())
	found := false
	for _, p := range paths {
		if strings.HasPrefix(p, "internal/pkg/stacktrace/stacktrace_test.go:") {
			found = true
		}
	}
	assert.True(t, found, paths)
}

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// crashLogDir is where crash reports are written. Set via InstallCrashHandler.
var crashLogDir = "./logs"

// InstallCrashHandler sets the crash report directory and ensures it exists.
// Call early in main, before any goroutines start.
func InstallCrashHandler(logDir string) {
	if logDir != "" {
		crashLogDir = logDir
	}
	if err := os.MkdirAll(crashLogDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: failed to create log directory: %v\n", err)
	}
}

// RecoverWithCrashFile is a deferred recovery helper for main.
// It writes a crash report and exits non-zero.
func RecoverWithCrashFile() {
	if r := recover(); r != nil {
		WriteCrashFile(r, GetStackTrace())
		os.Exit(1)
	}
}

// WriteCrashFile dumps a crash report with the panic value, the panicking
// goroutine's stack, all goroutine stacks and runtime stats. Returns the
// report path, or empty string when the file could not be written.
func WriteCrashFile(panicVal interface{}, stackTrace string) string {
	path := filepath.Join(crashLogDir, fmt.Sprintf("crash-%s.log", time.Now().Format("2006-01-02T15-04-05")))

	var b strings.Builder
	writeSection := func(name, body string) {
		b.WriteString("=== " + name + " ===\n")
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	writeSection("WPSTUDIO CRASH REPORT", fmt.Sprintf("Time: %s\nVersion: %s",
		time.Now().Format(time.RFC3339), GetFullVersion()))
	writeSection("PANIC VALUE", fmt.Sprintf("%v", panicVal))
	writeSection("STACK TRACE", stackTrace)
	writeSection("ALL GOROUTINES", allGoroutineStacks())

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	writeSection("RUNTIME", fmt.Sprintf(
		"NumGoroutine: %d\nNumCPU: %d\nGOOS: %s\nGOARCH: %s\nAlloc: %d MB\nSys: %d MB\nNumGC: %d",
		runtime.NumGoroutine(), runtime.NumCPU(), runtime.GOOS, runtime.GOARCH,
		mem.Alloc/1024/1024, mem.Sys/1024/1024, mem.NumGC))

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: failed to write crash file: %v\n%s", err, b.String())
		return ""
	}

	fmt.Fprintf(os.Stderr, "\n!!! FATAL CRASH - report saved to %s !!!\nPanic: %v\n", path, panicVal)
	return path
}

// GetStackTrace returns the current goroutine's stack trace.
func GetStackTrace() string {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// allGoroutineStacks captures stacks of every goroutine, growing the
// buffer until everything fits (capped at 64MB).
func allGoroutineStacks() string {
	buf := make([]byte, 64*1024)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return string(buf[:n])
		}
		if len(buf) >= 64*1024*1024 {
			return string(buf[:n])
		}
		buf = make([]byte, len(buf)*2)
	}
}

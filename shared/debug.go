// This file contains debug helpers that attach file, line and function
// context to log output, gated by DEBUG_MODE (see config.go). Used by the
// automaton scheduler, blackboard, tree, recorder, httpapi and
// cmd/automeshd to report diagnostics without paying runtime.Caller's cost
// when debug logging is off.
package shared

import (
	"log"
	"path/filepath"
	"runtime"
	"strings"
)

// DebugPrint logs format/args with caller file:line context when DEBUG_MODE
// is enabled. No-op otherwise.
func DebugPrint(format string, args ...interface{}) {
	if !DEBUG_MODE {
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		log.Printf("DEBUG: "+format+"\n", args...)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())

	log.Printf("[%s:%d %s]: "+format+"\n", append([]interface{}{filename, line, funcName}, args...)...)
}

// DebugError logs err with caller context when DEBUG_MODE is enabled, and
// unconditionally otherwise (errors are never silently dropped).
func DebugError(err error) {
	if !DEBUG_MODE {
		log.Printf("ERROR: %v\n", err)
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		log.Printf("ERROR: %v\n", err)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())

	log.Printf("ERROR [%s:%d %s]: %v\n", filename, line, funcName, err)
}

// DebugPanic logs a critical condition. In debug mode it panics so tests and
// development runs surface the bug immediately; in production it logs and
// continues, since a halted tick loop is worse than a logged inconsistency.
func DebugPanic(format string, args ...interface{}) {
	if !DEBUG_MODE {
		log.Printf("CRITICAL ERROR (would panic in debug): "+format, args...)
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		log.Panicf("PANIC: "+format, args...)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())

	log.Panicf("PANIC [%s:%d %s]: "+format,
		append([]interface{}{filename, line, funcName}, args...)...)
}

func getShortFuncName(fullName string) string {
	if lastSlash := strings.LastIndex(fullName, "/"); lastSlash >= 0 {
		fullName = fullName[lastSlash+1:]
	}
	if lastDot := strings.LastIndex(fullName, "."); lastDot >= 0 {
		return fullName[lastDot+1:]
	}
	return fullName
}

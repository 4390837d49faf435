// Package onnxrt owns the process-wide ONNX Runtime environment shared
// by the local detection and embedding backends.
package onnxrt

import (
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	once    sync.Once
	initErr error
)

// Init loads the ONNX Runtime shared library and initializes the
// environment. Safe to call from every backend probe; only the first
// call does work and its outcome is reused.
func Init(libraryPath string) error {
	once.Do(func() {
		if libraryPath != "" {
			if _, err := os.Stat(libraryPath); err != nil {
				initErr = fmt.Errorf("onnxruntime library not found: %w", err)
				return
			}
			ort.SetSharedLibraryPath(libraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			initErr = fmt.Errorf("failed to initialize onnxruntime: %w", err)
		}
	})
	return initErr
}

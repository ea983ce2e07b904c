// Copyright 2026 Gustavo C. Viegas. All rights reserved.

//go:build !android

package wsi

import "os"

func init() {
	if err := initGLFW(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		initDummy()
	}
}

// Package logger provides adapters for popular logging libraries to
// work with bptree's Logger interface.
//
// The adapters let an application reuse its existing logger without
// writing boilerplate. Note that the standard library's slog.Logger
// already implements bptree.Logger directly.
//
// Example with zap:
//
//	import (
//	    "bptree"
//	    "bptree/logger"
//	    "go.uber.org/zap"
//	)
//
//	func main() {
//	    zapLogger, _ := zap.NewProduction()
//
//	    tree, err := bptree.New[string, []byte](64,
//	        bptree.WithLogger(logger.NewZap(zapLogger)),
//	    )
//	    if err != nil {
//	        panic(err)
//	    }
//	    _ = tree
//	}
package logger

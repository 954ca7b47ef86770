// Copyright (c) 2026 Daggen Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Command daggen generates component implementations from a resolved
// declaration manifest.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	cfg := &Config{}
	flag.StringVar(&cfg.ManifestPath, "manifest", "daggen.json", "path to the declaration manifest")
	flag.StringVar(&cfg.OutDir, "out", "generated", "output directory for generated sources")
	flag.BoolVar(&cfg.FastInit, "fastinit", false, "emit switching providers to reduce class count")
	flag.BoolVar(&cfg.Format, "format", false, "format generated sources")
	flag.BoolVar(&cfg.Verbose, "v", false, "verbose logging")
	flag.Parse()

	app, err := InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "daggen: %v\n", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "daggen: %v\n", err)
		os.Exit(1)
	}
}

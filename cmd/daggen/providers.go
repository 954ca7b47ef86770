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

package main

import (
	"go.uber.org/zap"

	"go.daggen.dev/daggen"
)

// Config carries the command-line configuration.
type Config struct {
	ManifestPath string
	OutDir       string
	FastInit     bool
	Format       bool
	Verbose      bool
}

// App is the fully wired command.
type App struct {
	Config  *Config
	Logger  *zap.Logger
	Driver  *daggen.Driver
	Roots   []*daggen.ComponentDescriptor
}

// Run generates every component in the manifest.
func (a *App) Run() error {
	defer a.Logger.Sync()
	return a.Driver.Run(a.Roots)
}

// ProvideLogger builds the process logger.
func ProvideLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.Verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// ProvideManifest loads the resolved declarations.
func ProvideManifest(cfg *Config) (*Manifest, error) {
	return LoadManifest(cfg.ManifestPath)
}

// ProvideSources adapts the manifest to the front-end interface.
func ProvideSources(m *Manifest) daggen.Sources {
	return NewManifestSources(m)
}

// ProvideSink writes generated trees under the output directory.
func ProvideSink(cfg *Config) daggen.Sink {
	return &DirSink{Root: cfg.OutDir}
}

// ProvideRoots converts the manifest's components.
func ProvideRoots(m *Manifest) []*daggen.ComponentDescriptor {
	return m.Descriptors()
}

// ProvideDriver assembles the generation driver from the configuration.
func ProvideDriver(cfg *Config, log *zap.Logger, sources daggen.Sources, sink daggen.Sink) *daggen.Driver {
	opts := []daggen.Option{
		daggen.WithLogger(log),
		daggen.WithMessager(&daggen.ZapMessager{Log: log}),
	}
	if cfg.FastInit {
		opts = append(opts, daggen.FastInit())
	}
	if cfg.Format {
		opts = append(opts, daggen.FormatGeneratedSource())
	}
	return daggen.New(sources, sink, opts...)
}

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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeName(t *testing.T) {
	t.Parallel()

	t.Run("package and simple name", func(t *testing.T) {
		tn := parseTypeName("com.example.app.Thing")
		assert.Equal(t, "com.example.app", tn.Pkg)
		assert.Equal(t, []string{"Thing"}, tn.Names)
	})

	t.Run("nested types", func(t *testing.T) {
		tn := parseTypeName("com.example.Outer.Inner")
		assert.Equal(t, "com.example", tn.Pkg)
		assert.Equal(t, []string{"Outer", "Inner"}, tn.Names)
	})
}

const sampleManifest = `{
  "components": [
    {
      "type": "com.example.AppComponent",
      "scopes": ["Singleton"],
      "modules": [
        {
          "type": "com.example.AppModule",
          "bindings": [
            {"provides": "com.example.Config", "method": "provideConfig", "static": true, "scope": "Singleton"}
          ]
        }
      ],
      "entryPoints": [
        {"name": "config", "type": "com.example.Config"},
        {"name": "service", "type": "com.example.Service", "kind": "provider"}
      ]
    }
  ],
  "injectables": [
    {"type": "com.example.Service", "deps": ["com.example.Config"]}
  ]
}`

func TestEndToEndGeneration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "daggen.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(sampleManifest), 0o644))

	app, err := InitializeApp(&Config{
		ManifestPath: manifestPath,
		OutDir:       filepath.Join(dir, "gen"),
	})
	require.NoError(t, err)
	require.NoError(t, app.Run())

	generated := filepath.Join(dir, "gen", "com", "example", "DaggerAppComponent.java")
	data, err := os.ReadFile(generated)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "package com.example;")
	assert.Contains(t, out, "class DaggerAppComponent")
	assert.Contains(t, out, "DoubleCheck.provider(AppModule_ProvideConfigFactory.create())")
	assert.Contains(t, out, "return configProvider.get();")
	assert.Contains(t, out, "this.serviceProvider = Service_Factory.create(configProvider);")
	assert.Contains(t, out, "return serviceProvider;")
}

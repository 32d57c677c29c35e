package imports

import (
	"reflect"
	"testing"
)

func targets(deps []ParsedDependency) []string {
	var out []string
	for _, d := range deps {
		out = append(out, d.Target)
	}
	return out
}

func TestParseImportsJS(t *testing.T) {
	content := `
import React from 'react'
import { useState, useEffect } from "react"
import './styles.css'
const fs = require('fs')
const lazy = import('./lazy')
export { helper } from './helper'
export * from './types'
`
	deps := ParseImports("src/app.tsx", content)

	want := []string{"react", "react", "./styles.css", "fs", "./lazy", "./helper", "./types"}
	if got := targets(deps); !reflect.DeepEqual(got, want) {
		t.Errorf("targets = %v, want %v", got, want)
	}

	kinds := map[string]Kind{}
	for _, d := range deps {
		kinds[d.Target] = d.Kind
	}
	if kinds["fs"] != KindRequire {
		t.Errorf("require kind = %q", kinds["fs"])
	}
	if kinds["./lazy"] != KindDynamic {
		t.Errorf("dynamic kind = %q", kinds["./lazy"])
	}
	if kinds["react"] != KindImport {
		t.Errorf("import kind = %q", kinds["react"])
	}
}

func TestParseImportsPython(t *testing.T) {
	content := `
import os
import numpy.linalg
from collections import defaultdict
from .models import User
`
	deps := ParseImports("app/main.py", content)
	want := []string{"collections", ".models", "os", "numpy.linalg"}
	if got := targets(deps); !reflect.DeepEqual(got, want) {
		t.Errorf("targets = %v, want %v", got, want)
	}
}

func TestParseImportsGo(t *testing.T) {
	content := `package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

import "os"
`
	deps := ParseImports("cmd/main.go", content)
	want := []string{"fmt", "net/http", "github.com/spf13/cobra", "os"}
	if got := targets(deps); !reflect.DeepEqual(got, want) {
		t.Errorf("targets = %v, want %v", got, want)
	}
}

func TestParseImportsRust(t *testing.T) {
	content := `
use std::collections::HashMap;
pub use crate::parser;
mod config;
pub mod server;
`
	deps := ParseImports("src/lib.rs", content)
	want := []string{"std::collections::HashMap", "crate::parser", "config", "server"}
	if got := targets(deps); !reflect.DeepEqual(got, want) {
		t.Errorf("targets = %v, want %v", got, want)
	}
}

func TestParseImportsJava(t *testing.T) {
	content := `
package com.example;

import java.util.List;
import static org.junit.Assert.assertEquals;
`
	deps := ParseImports("src/Main.java", content)
	want := []string{"java.util.List", "org.junit.Assert.assertEquals"}
	if got := targets(deps); !reflect.DeepEqual(got, want) {
		t.Errorf("targets = %v, want %v", got, want)
	}
}

func TestParseImportsUnknownExtension(t *testing.T) {
	if deps := ParseImports("data.csv", "import x from 'y'"); deps != nil {
		t.Errorf("unknown extension should yield nil, got %v", deps)
	}
}

func TestParseImportsStableOrder(t *testing.T) {
	content := "import a from './a'\nimport b from './b'\n"
	first := ParseImports("x.ts", content)
	second := ParseImports("x.ts", content)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated parses differ")
	}
}

func TestParseable(t *testing.T) {
	for _, ext := range []string{"ts", "tsx", "js", "jsx", "mjs", "cjs", "py", "go", "rs", "java"} {
		if !Parseable(ext) {
			t.Errorf("Parseable(%q) = false", ext)
		}
	}
	for _, ext := range []string{"css", "md", "sql", ""} {
		if Parseable(ext) {
			t.Errorf("Parseable(%q) = true", ext)
		}
	}
}

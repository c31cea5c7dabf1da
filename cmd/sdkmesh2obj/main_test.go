package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pierrec/lz4/v4"

	"sdkmesh2obj/internal/sdkmesh"
	"sdkmesh2obj/internal/sdkmesh/sdkmeshtest"
)

func writeMesh(t *testing.T, dir string, f *sdkmeshtest.File) string {
	t.Helper()
	path := filepath.Join(dir, "in.sdkmesh")
	if err := os.WriteFile(path, f.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMissingArguments(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{
		nil,
		{"-i", filepath.Join(dir, "in.sdkmesh")},
		{"-o", filepath.Join(dir, "out.obj")},
	} {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != 1 {
			t.Fatalf("args %v: exit %d, want 1", args, code)
		}
		if !strings.Contains(stderr.String(), "Missing command") {
			t.Fatalf("args %v: usage not printed: %q", args, stderr.String())
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("files created without arguments: %v", entries)
	}
}

func TestConvertTriangle(t *testing.T) {
	dir := t.TempDir()
	in := writeMesh(t, dir, sdkmeshtest.Triangle(sdkmesh.Index16))
	out := filepath.Join(dir, "out.obj")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-i=" + in, "-o=" + out}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Finished") {
		t.Fatalf("status report missing Finished:\n%s", stdout.String())
	}

	obj, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(obj), "mtllib out.mtl\n") {
		t.Fatalf("mtllib line missing:\n%s", obj)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.mtl")); err != nil {
		t.Fatalf("material file missing: %v", err)
	}
}

func TestRecoverableErrorsExitTwo(t *testing.T) {
	dir := t.TempDir()
	f := sdkmeshtest.Quad(sdkmesh.Index16)
	f.Subsets[1].PrimitiveType = sdkmesh.LineList
	in := writeMesh(t, dir, f)
	out := filepath.Join(dir, "out.obj")
	report := filepath.Join(dir, "report.json")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-i", in, "-o", out, "-report", report}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if !strings.Contains(stdout.String(), "Errors: 1") {
		t.Fatalf("status report missing error count:\n%s", stdout.String())
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatal(err)
	}
	var res struct {
		Written int `json:"written"`
		Skipped int `json:"skipped"`
		Errors  int `json:"errors"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Written != 1 || res.Skipped != 1 || res.Errors != 1 {
		t.Fatalf("unexpected report: %+v", res)
	}
}

func TestFatalErrorExitsOne(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", filepath.Join(dir, "missing.sdkmesh"), "-o", filepath.Join(dir, "out.obj")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.obj")); !os.IsNotExist(err) {
		t.Fatalf("output created for unreadable input")
	}
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	in := writeMesh(t, dir, sdkmeshtest.Triangle(sdkmesh.Index32))
	webp := filepath.Join(dir, "preview.webp")

	var stdout, stderr bytes.Buffer
	args := []string{"-i", in, "-o", filepath.Join(dir, "out.obj"), "-preview", webp, "-size", "32"}
	if code := run(args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	data, err := os.ReadFile(webp)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Fatalf("not a WebP file")
	}
}

func TestPreviewFromCompressedInput(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(sdkmeshtest.Quad(sdkmesh.Index16).Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "in.sdkmesh.lz4")
	if err := os.WriteFile(in, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	webp := filepath.Join(dir, "preview.webp")

	var stdout, stderr bytes.Buffer
	args := []string{"-i", in, "-o", filepath.Join(dir, "out.obj"), "-preview", webp, "-size", "32"}
	if code := run(args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(webp); err != nil {
		t.Fatalf("preview missing: %v", err)
	}
	if !strings.Contains(stdout.String(), "Preview: "+webp) {
		t.Fatalf("preview path not reported:\n%s", stdout.String())
	}
}

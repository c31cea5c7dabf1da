package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sdkmesh2obj/internal/logx"
	"sdkmesh2obj/internal/sdkmesh"
	"sdkmesh2obj/internal/sdkmesh/sdkmeshtest"
)

func TestMaterialPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"out.obj", "out.mtl"},
		{filepath.Join("dir", "model.OBJ"), filepath.Join("dir", "model.mtl")},
		{"noext", "noext.mtl"},
		{filepath.Join("a.b", "c"), filepath.Join("a.b", "c.mtl")},
	}
	for _, tc := range cases {
		if got := MaterialPath(tc.in); got != tc.want {
			t.Errorf("MaterialPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNonTriangleSubsetIsSkippedAndCounted(t *testing.T) {
	f := sdkmeshtest.Quad(sdkmesh.Index16)
	f.Subsets[1].PrimitiveType = sdkmesh.LineList
	c, err := sdkmesh.Load(f.Bytes())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var obj, mtl, status bytes.Buffer
	res, err := Write(c, &obj, &mtl, "quad.mtl", &status, logx.Discard())
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if res.Errors != 1 || res.Skipped != 1 || res.Written != 1 || res.Subsets != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if strings.Contains(obj.String(), "usemtl mat blue") {
		t.Fatalf("skipped subset produced geometry:\n%s", obj.String())
	}
	if n := strings.Count(obj.String(), "\nf "); n != 1 {
		t.Fatalf("expected 1 face, got %d", n)
	}
	if !strings.Contains(status.String(), "PT_LINE_LIST") || !strings.Contains(status.String(), "Errors: 1") {
		t.Fatalf("status report incomplete:\n%s", status.String())
	}
}

func TestWriteCleanRun(t *testing.T) {
	c, err := sdkmesh.Load(sdkmeshtest.Quad(sdkmesh.Index32).Bytes())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var obj, mtl, status bytes.Buffer
	res, err := Write(c, &obj, &mtl, "quad.mtl", &status, nil)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if res.Errors != 0 || res.Written != 2 || res.Materials != 2 || res.Meshes != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Stats.Faces != 2 || res.Stats.Vertices != 6 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
	if !strings.Contains(status.String(), "Finished") || !strings.Contains(status.String(), "32BIT") {
		t.Fatalf("status report incomplete:\n%s", status.String())
	}
	if !strings.HasPrefix(obj.String(), "# exported by sdkmesh2obj\nmtllib quad.mtl\n") {
		t.Fatalf("geometry header mismatch:\n%s", obj.String())
	}
}

func TestRunWritesFilesAndReport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tri.sdkmesh")
	if err := os.WriteFile(in, sdkmeshtest.Triangle(sdkmesh.Index16).Bytes(), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	out := filepath.Join(dir, "out", "tri.obj")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	c, res, err := Run(Options{Input: in, Output: out})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if c == nil || c.NumMeshes() != 1 {
		t.Fatalf("loaded container not returned")
	}
	if res.Input != in || res.Output != out || res.Material != filepath.Join(dir, "out", "tri.mtl") {
		t.Fatalf("paths mismatch: %+v", res)
	}

	obj, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read obj: %v", err)
	}
	if !strings.Contains(string(obj), "mtllib tri.mtl\n") || !strings.Contains(string(obj), "f 1/1/1 2/2/2 3/3/3\n") {
		t.Fatalf("geometry mismatch:\n%s", obj)
	}
	mtl, err := os.ReadFile(res.Material)
	if err != nil {
		t.Fatalf("read mtl: %v", err)
	}
	if !strings.Contains(string(mtl), "newmtl mat red\n") {
		t.Fatalf("material mismatch:\n%s", mtl)
	}

	reportPath := filepath.Join(dir, "report.json")
	if err := WriteReport(reportPath, res); err != nil {
		t.Fatalf("write report: %v", err)
	}
	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var back Result
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if back.Written != 1 || back.Stats.Faces != 1 {
		t.Fatalf("report mismatch: %+v", back)
	}
}

func TestRunFatalErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "x.obj")

	if _, _, err := Run(Options{Input: filepath.Join(dir, "missing.sdkmesh"), Output: out}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	f := sdkmeshtest.Triangle(sdkmesh.Index16)
	f.Version = 102
	in := filepath.Join(dir, "old.sdkmesh")
	if err := os.WriteFile(in, f.Bytes(), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if _, _, err := Run(Options{Input: in, Output: out}); !errors.Is(err, sdkmesh.ErrUnsupportedVersion) {
		t.Fatalf("expected version error, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output must not be created on load failure")
	}
}

func TestExportAbortsWhenMaterialCannotOpen(t *testing.T) {
	dir := t.TempDir()
	// A directory in the way of the MTL file makes its creation fail.
	if err := os.Mkdir(filepath.Join(dir, "out.mtl"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	c, err := sdkmesh.Load(sdkmeshtest.Triangle(sdkmesh.Index16).Bytes())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	out := filepath.Join(dir, "out.obj")
	if _, err := Export(c, out, nil, nil); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("geometry file should be removed after abort")
	}
}

func TestExportRejectsMtlOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.mtl")
	if _, err := Export(nil, out, nil, nil); err == nil {
		t.Fatalf("expected error for .mtl output")
	}
}

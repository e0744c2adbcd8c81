package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/mmtecheng/mmrp/internal/mrp/testutil"
)

func TestBOMListOrdering(t *testing.T) {
	router, db := setupMRPTest(t)
	testutil.SeedPart(t, db, "ASSY-1", "主板总成", nil)
	testutil.SeedBOMLine(t, db, "ASSY-1", "C-10", "10", testutil.Float64Ptr(2))
	testutil.SeedBOMLine(t, db, "ASSY-1", "C-2", "2", testutil.Float64Ptr(1))
	testutil.SeedBOMLine(t, db, "ASSY-1", "C-REF", "REF", testutil.Float64Ptr(1))
	testutil.SeedBOMLine(t, db, "ASSY-1", "C-1", "1", testutil.Float64Ptr(4))

	w := testutil.DoRequest(router, "GET", "/api/v1/mrp/bom?assembly=ASSY-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(items))
	}

	// 序号数值感知排序：1, 2, 10，非数字序号排最后
	want := []string{"1", "2", "10", "REF"}
	for i, w := range want {
		line := items[i].(map[string]interface{})
		if line["sequence"] != w {
			t.Errorf("position %d sequence = %v, want %s", i, line["sequence"], w)
		}
	}
}

func TestBOMListFiltersByAssembly(t *testing.T) {
	router, db := setupMRPTest(t)
	testutil.SeedBOMLine(t, db, "ASSY-1", "C-1", "1", testutil.Float64Ptr(1))
	testutil.SeedBOMLine(t, db, "ASSY-2", "C-2", "1", testutil.Float64Ptr(1))

	w := testutil.DoRequest(router, "GET", "/api/v1/mrp/bom?assembly=ASSY-2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(items))
	}
	line := items[0].(map[string]interface{})
	if line["component"] != "C-2" {
		t.Errorf("Expected component C-2, got %v", line["component"])
	}
}

func TestBOMListAssembliesAvailable(t *testing.T) {
	router, db := setupMRPTest(t)
	// C-1 可装 5 套，C-2 可装 3 套，瓶颈为 3
	testutil.SeedBOMLine(t, db, "ASSY-9", "C-1", "1", testutil.Float64Ptr(2))
	testutil.SeedBOMLine(t, db, "ASSY-9", "C-2", "2", testutil.Float64Ptr(1))
	testutil.SeedLot(t, db, "C-1", 10, testTime())
	testutil.SeedLot(t, db, "C-2", 3, testTime())

	w := testutil.DoRequest(router, "GET", "/api/v1/mrp/bom?assembly=ASSY-9", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["assemblies_available"].(float64) != 3 {
		t.Errorf("Expected assemblies_available 3, got %v", data["assemblies_available"])
	}

	// 全局清单不带装配能力字段
	w = testutil.DoRequest(router, "GET", "/api/v1/mrp/bom?limit=10", nil)
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if _, present := data["assemblies_available"]; present {
		t.Error("Expected no assemblies_available on the global listing")
	}
}

func TestBOMBuildShortages(t *testing.T) {
	router, db := setupMRPTest(t)
	testutil.SeedBOMLine(t, db, "ASSY-5", "C-1", "1", testutil.Float64Ptr(2))
	testutil.SeedLot(t, db, "C-1", 10, testTime())

	// 目标 10 套：需 20，缺 10
	w := testutil.DoRequest(router, "GET", "/api/v1/mrp/bom/build?assembly=ASSY-5&count=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["assemblies_available"].(float64) != 5 {
		t.Errorf("Expected assemblies_available 5, got %v", data["assemblies_available"])
	}
	shortages := data["shortages"].([]interface{})
	if len(shortages) != 1 {
		t.Fatalf("Expected 1 shortage line, got %d", len(shortages))
	}
	s := shortages[0].(map[string]interface{})
	if s["required"].(float64) != 20 || s["shortage"].(float64) != 10 {
		t.Errorf("Expected required 20 shortage 10, got %+v", s)
	}
}

func TestBOMBuildRequiresAssembly(t *testing.T) {
	router, _ := setupMRPTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/mrp/bom/build", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBOMExport(t *testing.T) {
	router, db := setupMRPTest(t)
	testutil.SeedBOMLine(t, db, "ASSY-7", "C-1", "1", testutil.Float64Ptr(1))

	w := testutil.DoRequest(router, "GET", "/api/v1/mrp/bom/export?assembly=ASSY-7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Expected xlsx content type, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "BOM_ASSY-7_") {
		t.Errorf("Expected attachment filename with assembly, got %q", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("Expected non-empty workbook body")
	}
}

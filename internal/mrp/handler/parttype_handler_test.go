package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/mmtecheng/mmrp/internal/mrp/entity"
	"github.com/mmtecheng/mmrp/internal/mrp/testutil"
)

func TestPartTypeList(t *testing.T) {
	router, db := setupMRPTest(t)
	testutil.SeedPartType(t, db, "RES", nil)
	testutil.SeedPartType(t, db, "CAP", nil)

	w := testutil.DoRequest(router, "GET", "/api/v1/mrp/part-types", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 part types, got %d", len(items))
	}
}

func TestPartTypeAttributesEvaluation(t *testing.T) {
	router, db := setupMRPTest(t)
	pt, _ := seedResistorType(t, db)
	base := fmt.Sprintf("/api/v1/mrp/part-types/%d/attributes", pt.ID)

	// 不带子类型：条件属性可见但非必填
	w := testutil.DoRequest(router, "GET", base, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 3 {
		t.Fatalf("Expected 3 attribute definitions, got %d", len(items))
	}
	byCode := make(map[string]map[string]interface{}, len(items))
	for _, it := range items {
		view := it.(map[string]interface{})
		byCode[view["code"].(string)] = view
	}
	if byCode["subtype"]["required"] != true {
		t.Error("Expected subtype unconditionally required")
	}
	if byCode["package"]["required"] != false || byCode["package"]["visible"] != true {
		t.Errorf("Expected package optional and visible without subtype, got %v", byCode["package"])
	}

	// 子类型 SMD：package 必填
	w = testutil.DoRequest(router, "GET", base+"?subtype=SMD", nil)
	items = testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	for _, it := range items {
		view := it.(map[string]interface{})
		if view["code"] == "package" && view["required"] != true {
			t.Errorf("Expected package required for SMD, got %v", view)
		}
	}

	// 子类型 THT：package 不必填且不可见
	w = testutil.DoRequest(router, "GET", base+"?subtype=THT", nil)
	items = testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	for _, it := range items {
		view := it.(map[string]interface{})
		if view["code"] == "package" && (view["required"] != false || view["visible"] != false) {
			t.Errorf("Expected package hidden for THT, got %v", view)
		}
	}
}

func TestPartTypeAttributesUnknownType(t *testing.T) {
	router, _ := setupMRPTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/mrp/part-types/9999/attributes", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/mrp/part-types/abc/attributes", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUOMList(t *testing.T) {
	router, db := setupMRPTest(t)
	db.Create(&entity.UnitOfMeasure{Code: "ea", Description: "个", Type: entity.UOMTypeStock, ConversionFactor: 1})
	db.Create(&entity.UnitOfMeasure{Code: "kg", Description: "千克", Type: entity.UOMTypePurchase, ConversionFactor: 1})

	w := testutil.DoRequest(router, "GET", "/api/v1/mrp/uoms?type=stock", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 stock uom, got %d", len(items))
	}
	uom := items[0].(map[string]interface{})
	if uom["code"] != "ea" {
		t.Errorf("Expected code ea, got %v", uom["code"])
	}
}

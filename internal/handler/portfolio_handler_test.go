package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lvclicks/internal/db"
	"github.com/lvclicks/internal/service"
)

type portfolioItemResponse struct {
	ID            uint   `json:"ID"`
	URL           string `json:"url"`
	MediaObjectID string `json:"media_object_id"`
	Category      string `json:"category"`
	IsLandingPage bool   `json:"is_landing_page"`
	Order         int    `json:"order"`
}

func encodePNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, category string, landing bool, data []byte, contentType string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="image"; filename="upload.png"`)
	partHeader.Set("Content-Type", contentType)
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write image part: %v", err)
	}

	if err := writer.WriteField("category", category); err != nil {
		t.Fatalf("failed to write category field: %v", err)
	}
	if landing {
		if err := writer.WriteField("is_landing_page", "true"); err != nil {
			t.Fatalf("failed to write landing field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func doJSON(t *testing.T, r *gin.Engine, method, target string, cookies []*http.Cookie, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestPortfolioUploadFlow(t *testing.T) {
	gdb, cleanup := setupHandlerTestDB(t)
	defer cleanup()

	seedAdmin(t, gdb, "admin@lvclicks.com", "correct-horse")
	mediaDir := t.TempDir()
	media := service.NewDiskMediaStore(mediaDir, "/static/media")
	r := newTestEngine(NewAPI(gdb, media))

	cookies := loginSession(t, r, "admin@lvclicks.com", "correct-horse")

	// 上传
	body, contentType := multipartUpload(t, "wedding", true, encodePNG(t), "image/png")
	req := httptest.NewRequest(http.MethodPost, "/admin/api/portfolio", body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 for upload, got %d: %s", rr.Code, rr.Body.String())
	}

	var uploadResp struct {
		Item portfolioItemResponse `json:"item"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &uploadResp); err != nil {
		t.Fatalf("failed to decode upload response: %v", err)
	}
	item := uploadResp.Item
	if item.ID == 0 || item.Category != "wedding" || !item.IsLandingPage {
		t.Fatalf("unexpected upload response item: %+v", item)
	}
	if item.Order != 0 {
		t.Fatalf("expected first image order 0, got %d", item.Order)
	}

	// 文件应写入媒体目录
	storedPath := filepath.Join(mediaDir, filepath.FromSlash(item.MediaObjectID))
	if _, err := os.Stat(storedPath); err != nil {
		t.Fatalf("expected stored media file: %v", err)
	}

	// 公开列表无需登录
	rr = doJSON(t, r, http.MethodGet, "/api/portfolio?category=wedding", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for public list, got %d", rr.Code)
	}
	var listResp struct {
		Items []portfolioItemResponse `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(listResp.Items) != 1 || listResp.Items[0].ID != item.ID {
		t.Fatalf("expected uploaded image in public list, got %+v", listResp.Items)
	}

	// 修改排序并取消首页标记
	order := 7
	landing := false
	rr = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/api/portfolio/%d", item.ID), cookies, map[string]interface{}{
		"order":           order,
		"is_landing_page": landing,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for update, got %d: %s", rr.Code, rr.Body.String())
	}
	var updateResp struct {
		Item portfolioItemResponse `json:"item"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &updateResp); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if updateResp.Item.Order != 7 || updateResp.Item.IsLandingPage {
		t.Fatalf("unexpected updated item: %+v", updateResp.Item)
	}

	// 删除后媒体文件随之移除
	rr = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/api/portfolio/%d", item.ID), cookies, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for delete, got %d: %s", rr.Code, rr.Body.String())
	}
	if _, err := os.Stat(storedPath); !os.IsNotExist(err) {
		t.Fatalf("expected media file removed, got %v", err)
	}

	rr = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/api/portfolio/%d", item.ID), cookies, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for repeated delete, got %d", rr.Code)
	}
}

func TestPortfolioUploadValidation(t *testing.T) {
	gdb, cleanup := setupHandlerTestDB(t)
	defer cleanup()

	seedAdmin(t, gdb, "admin@lvclicks.com", "correct-horse")
	media := service.NewDiskMediaStore(t.TempDir(), "/static/media")
	r := newTestEngine(NewAPI(gdb, media))

	cookies := loginSession(t, r, "admin@lvclicks.com", "correct-horse")

	// 非图片 Content-Type 直接拒绝
	body, contentType := multipartUpload(t, "wedding", false, []byte("plain text"), "text/plain")
	req := httptest.NewRequest(http.MethodPost, "/admin/api/portfolio", body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image upload, got %d", rr.Code)
	}

	// 未知分类
	body, contentType = multipartUpload(t, "anniversary", false, encodePNG(t), "image/png")
	req = httptest.NewRequest(http.MethodPost, "/admin/api/portfolio", body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "category") {
		t.Fatalf("expected category error message, got %s", rr.Body.String())
	}

	// 不存在的图片
	rr = doJSON(t, r, http.MethodPatch, "/admin/api/portfolio/9999", cookies, map[string]interface{}{"order": 1})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing image, got %d", rr.Code)
	}

	// 尝试修改分类
	seed := db.PortfolioImage{URL: "https://media.test/x", MediaObjectID: "x", Category: "events"}
	if err := gdb.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed image: %v", err)
	}
	rr = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/api/portfolio/%d", seed.ID), cookies, map[string]interface{}{
		"category": "wedding",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for category change, got %d", rr.Code)
	}
}

func TestPublicListRejectsUnknownCategory(t *testing.T) {
	gdb, cleanup := setupHandlerTestDB(t)
	defer cleanup()

	media := service.NewDiskMediaStore(t.TempDir(), "/static/media")
	r := newTestEngine(NewAPI(gdb, media))

	rr := doJSON(t, r, http.MethodGet, "/api/portfolio?category=anniversary", nil, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rr.Code)
	}
}

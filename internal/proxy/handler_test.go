package proxy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bravemath-backend/internal/drive"
	"bravemath-backend/internal/shared/server/middleware"
)

const testID = "1AbCdEfGhIjKlMnOpQrStUvWxYz01234"

// recordingUpstream stands in for Drive and records every request path.
type recordingUpstream struct {
	*httptest.Server
	paths []string
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *recordingUpstream {
	t.Helper()
	up := &recordingUpstream{}
	up.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up.paths = append(up.paths, r.URL.RequestURI())
		handler(w, r)
	}))
	t.Cleanup(up.Close)
	return up
}

func proxyRouter(t *testing.T, baseURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(drive.NewClient(baseURL), "1.0.0")
	r := gin.New()
	h.RegisterRoutes(r.Group("/"))
	r.NoRoute(h.Capabilities)
	return r
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestDownloadRelaysUpstreamFile(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="doc.pdf"`)
		w.Write([]byte("%PDF-1.4 test"))
	})
	r := proxyRouter(t, up.URL)

	resp := doGet(r, "/download/"+testID)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Body.String(); got != "%PDF-1.4 test" {
		t.Fatalf("body not relayed, got %q", got)
	}
	if got := resp.Header().Get("Cache-Control"); got != "public, max-age=86400" {
		t.Fatalf("unexpected Cache-Control %q", got)
	}
	if got := resp.Header().Get("X-Powered-By"); got != "BraveMath" {
		t.Fatalf("unexpected X-Powered-By %q", got)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected Content-Type %q", got)
	}
	if got := resp.Header().Get("Content-Disposition"); !strings.Contains(got, "doc.pdf") {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}

	if len(up.paths) != 1 || up.paths[0] != "/uc?export=download&id="+testID {
		t.Fatalf("unexpected upstream requests %v", up.paths)
	}
}

func TestDownloadRejectsInvalidIDWithoutUpstreamCall(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {})
	r := proxyRouter(t, up.URL)

	for _, id := range []string{"short", "has spaces here but is long enough!!", strings.Repeat("a", 45)} {
		resp := doGet(r, "/download/"+strings.ReplaceAll(id, " ", "%20"))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected status 400, got %d", id, resp.Code)
		}
	}

	if len(up.paths) != 0 {
		t.Fatalf("invalid ids must not reach upstream, saw %v", up.paths)
	}
}

func TestDownloadRelaysUpstreamFailureStatus(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r := proxyRouter(t, up.URL)

	resp := doGet(r, "/download/"+testID)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Message != "Failed to fetch from Drive" {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
}

func TestDownloadUpstreamUnreachableIs500(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {})
	base := up.URL
	up.Close()
	r := proxyRouter(t, base)

	resp := doGet(r, "/download/"+testID)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestPreviewServesEmbedPage(t *testing.T) {
	r := proxyRouter(t, "https://drive.google.com")

	resp := doGet(r, "/preview/"+testID)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("unexpected Content-Type %q", got)
	}

	body := resp.Body.String()
	if !strings.Contains(body, "https://drive.google.com/file/d/"+testID+"/preview") {
		t.Fatalf("embed URL missing from page:\n%s", body)
	}
	if !strings.Contains(body, "Đang tải tài liệu...") {
		t.Fatal("loading indicator missing from page")
	}

	if resp := doGet(r, "/preview/nope"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for invalid id, got %d", resp.Code)
	}
}

func TestCapabilitiesOnUnknownPath(t *testing.T) {
	r := proxyRouter(t, "https://drive.google.com")

	resp := doGet(r, "/whatever")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		Service   string   `json:"service"`
		Version   string   `json:"version"`
		Endpoints []string `json:"endpoints"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Service != "BraveMath Proxy" || body.Version != "1.0.0" {
		t.Fatalf("unexpected capability document %+v", body)
	}
	if len(body.Endpoints) != 2 {
		t.Fatalf("expected 2 endpoints, got %v", body.Endpoints)
	}
}

func TestProxyRoutesHonorRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	h := NewHandler(drive.NewClient(up.URL), "1.0.0")
	limiter := middleware.NewRateLimiter(2, time.Minute, time.Now)

	r := gin.New()
	limited := r.Group("/", middleware.RateLimit(middleware.RateLimitConfig{
		Limiter:  limiter,
		IPHeader: "CF-Connecting-IP",
	}))
	h.RegisterRoutes(limited)

	for i := 0; i < 2; i++ {
		if resp := doGet(r, "/download/"+testID); resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i+1, resp.Code)
		}
	}
	if resp := doGet(r, "/download/"+testID); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", resp.Code)
	}
}
